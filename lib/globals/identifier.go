package globals

import "unicode"

var reservedWords = map[string]bool{
	"break":      true,
	"case":       true,
	"catch":      true,
	"class":      true,
	"const":      true,
	"continue":   true,
	"debugger":   true,
	"default":    true,
	"delete":     true,
	"do":         true,
	"else":       true,
	"enum":       true,
	"export":     true,
	"extends":    true,
	"false":      true,
	"finally":    true,
	"for":        true,
	"function":   true,
	"if":         true,
	"import":     true,
	"in":         true,
	"instanceof": true,
	"new":        true,
	"null":       true,
	"return":     true,
	"super":      true,
	"switch":     true,
	"this":       true,
	"throw":      true,
	"true":       true,
	"try":        true,
	"typeof":     true,
	"var":        true,
	"void":       true,
	"while":      true,
	"with":       true,

	// stand-in modules are ESM, so strict mode words count too
	"implements": true,
	"interface":  true,
	"let":        true,
	"package":    true,
	"private":    true,
	"protected":  true,
	"public":     true,
	"static":     true,
	"yield":      true,
	"await":      true,
}

// strict mode code, and so every module, cannot declare these
var restrictedBindings = map[string]bool{
	"eval":      true,
	"arguments": true,
}

// IsReservedWord reports whether text cannot be used as a binding name in a module.
func IsReservedWord(text string) bool {
	return reservedWords[text]
}

// IsBindingName reports whether text can be declared with const in a module.
func IsBindingName(text string) bool {
	return IsIdentifier(text) && !reservedWords[text] && !restrictedBindings[text]
}

// IsIdentifier reports whether text is a valid JavaScript identifier name.
func IsIdentifier(text string) bool {
	if len(text) == 0 {
		return false
	}
	for i, codePoint := range text {
		if i == 0 {
			if !isIdentifierStart(codePoint) {
				return false
			}
		} else if !isIdentifierContinue(codePoint) {
			return false
		}
	}
	return true
}

func isIdentifierStart(codePoint rune) bool {
	switch {
	case codePoint == '_', codePoint == '$',
		codePoint >= 'a' && codePoint <= 'z',
		codePoint >= 'A' && codePoint <= 'Z':
		return true
	case codePoint < 0x7F:
		return false
	}
	return unicode.In(codePoint, unicode.Letter, unicode.Nl, unicode.Other_ID_Start)
}

func isIdentifierContinue(codePoint rune) bool {
	if isIdentifierStart(codePoint) || (codePoint >= '0' && codePoint <= '9') {
		return true
	}
	if codePoint < 0x7F {
		return false
	}

	// ZWNJ and ZWJ
	if codePoint == 0x200C || codePoint == 0x200D {
		return true
	}

	return unicode.In(codePoint, unicode.Mn, unicode.Mc, unicode.Nd, unicode.Pc, unicode.Other_ID_Continue)
}
