package rxsub

import (
	"testing"

	"rxguard/internal/sym"
)

func sig(params ...sym.Param) *sym.Signature {
	return &sym.Signature{
		Owner:      sym.Class("System.ObservableExtensions"),
		Method:     "Subscribe",
		TypeParams: 1,
		Extension:  true,
		Params:     params,
		Returns:    sym.Interface("System.IDisposable"),
	}
}

func TestHasErrorHandler(t *testing.T) {
	onNext := sym.Param{Name: "onNext", Type: sym.Action(sym.TypeParam("T")), Callback: true}
	onError := sym.Param{Name: "onError", Type: sym.Action(sym.Class("System.Exception")), Callback: true}
	onCompleted := sym.Param{Name: "onCompleted", Type: sym.Action(), Callback: true}

	tests := []struct {
		name string
		sig  *sym.Signature
		want bool
	}{
		{"no params", sig(), false},
		{"onNext only", sig(onNext), false},
		{"handler in second position", sig(onNext, onError), true},
		{"handler in last position", sig(onNext, onCompleted, onError), true},
		{"handler first", sig(onError, onNext), true},
		{"completion callback only", sig(onNext, onCompleted), false},
	}
	for _, tt := range tests {
		if got := HasErrorHandler(tt.sig); got != tt.want {
			t.Errorf("%s: HasErrorHandler = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHasErrorHandlerRequiresAllThreeProperties(t *testing.T) {
	tests := []struct {
		name  string
		param sym.Param
	}{
		{
			"right name, not a callback",
			sym.Param{Name: "onError", Type: sym.Class("System.Exception"), Callback: false},
		},
		{
			"right name, wrong arity",
			sym.Param{Name: "onError", Type: sym.Action(sym.Class("System.Exception"), sym.TypeParam("T")), Callback: true},
		},
		{
			"right name, zero-arg callback",
			sym.Param{Name: "onError", Type: sym.Action(), Callback: true},
		},
		{
			"right shape, wrong callback value type",
			sym.Param{Name: "onError", Type: sym.Action(sym.Class("System.String")), Callback: true},
		},
		{
			"right shape, wrong name",
			sym.Param{Name: "errorHandler", Type: sym.Action(sym.Class("System.Exception")), Callback: true},
		},
	}
	for _, tt := range tests {
		if HasErrorHandler(sig(tt.param)) {
			t.Errorf("%s: predicate accepted", tt.name)
		}
	}
}
