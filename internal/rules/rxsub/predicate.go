package rxsub

import "rxguard/internal/sym"

// HasErrorHandler reports whether the resolved overload accepts an error
// callback. A parameter counts when it is named onError, its declared type
// is a callback, and that callback takes exactly one value of type
// System.Exception. Position in the parameter list does not matter.
func HasErrorHandler(sig *sym.Signature) bool {
	for _, p := range sig.Params {
		if p.Name != errorParamName {
			continue
		}
		if p.CallbackArity() != 1 {
			continue
		}
		if p.Type.Name == callbackTypeName && p.Type.TypeArgs[0].Name == exceptionTypeName {
			return true
		}
	}
	return false
}
