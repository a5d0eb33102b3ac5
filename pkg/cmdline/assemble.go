package cmdline

// assemble binds each value token to the name token before it.
//
// A name followed by another name, or by the end of input, has no value.
// A value with no pending name (input such as "=foo") is discarded.
func assemble(tokens []Token, obs observer) Params {
	var params Params
	var pending *Token

	push := func(p Param, offset int) {
		if obs != nil {
			obs.param(len(params), p, offset)
		}
		params = append(params, p)
	}

	for i := range tokens {
		tok := tokens[i]
		switch tok.Kind {
		case TokenName:
			if pending != nil {
				push(Param{Name: pending.Data}, pending.Offset)
			}
			pending = &tok
		case TokenValue:
			if pending == nil {
				if obs != nil {
					obs.orphanValue(tok)
				}
				continue
			}
			push(Param{Name: pending.Data, Value: tok.Data, HasValue: true}, pending.Offset)
			pending = nil
		}
	}

	if pending != nil {
		push(Param{Name: pending.Data}, pending.Offset)
	}

	return params
}
