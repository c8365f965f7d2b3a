package resolver

// builtinParents maps every SPL/engine exception type (lowercased) to its
// immediate ancestor. The analyzed codebase never declares these, so the
// hierarchy index is seeded statically instead of resolving them from source.
// Exception and Error both implement Throwable; a single parent link is enough
// for subtype walks.
var builtinParents = map[string]string{
	"exception":                "Throwable",
	"error":                    "Throwable",
	"errorexception":           "Exception",
	"jsonexception":            "Exception",
	"logicexception":           "Exception",
	"badfunctioncallexception": "LogicException",
	"badmethodcallexception":   "BadFunctionCallException",
	"domainexception":          "LogicException",
	"invalidargumentexception": "LogicException",
	"lengthexception":          "LogicException",
	"outofrangeexception":      "LogicException",
	"runtimeexception":         "Exception",
	"outofboundsexception":     "RuntimeException",
	"overflowexception":        "RuntimeException",
	"rangeexception":           "RuntimeException",
	"underflowexception":       "RuntimeException",
	"unexpectedvalueexception": "RuntimeException",
	"arithmeticerror":          "Error",
	"divisionbyzeroerror":      "ArithmeticError",
	"assertionerror":           "Error",
	"typeerror":                "Error",
	"argumentcounterror":       "TypeError",
	"valueerror":               "Error",
	"unhandledmatcherror":      "Error",
}

// builtinParent returns the ancestor of a builtin type, if the name is one.
func builtinParent(canonical string) (string, bool) {
	parent, ok := builtinParents[lower(canonical)]
	return parent, ok
}
