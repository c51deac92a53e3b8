package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestEAndKind(t *testing.T) {
	err := E(Op("api.Friends"), KindNetwork, "could not reach the server", stderrors.New("dial tcp: refused"))

	if !Is(err, KindNetwork) {
		t.Error("kind not carried")
	}
	if Is(err, KindAuth) {
		t.Error("wrong kind matched")
	}
	if GetKind(err) != KindNetwork {
		t.Errorf("GetKind = %v", GetKind(err))
	}
	if !strings.Contains(err.Error(), "api.Friends") {
		t.Errorf("message %q missing op", err.Error())
	}
}

func TestGetKindPlainError(t *testing.T) {
	if GetKind(stderrors.New("plain")) != KindUnknown {
		t.Error("plain error should be KindUnknown")
	}
}

func TestUnwrapChain(t *testing.T) {
	root := stderrors.New("root cause")
	err := E(Op("outer"), KindIO, "wrapping", root)
	if !stderrors.Is(err, root) {
		t.Error("errors.Is lost the chain")
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "context preferred", err: E(Op("x"), KindNetwork, "could not reach the server", stderrors.New("dial")), want: "could not reach the server"},
		{name: "leaf message", err: E(Op("x"), KindInvalid, "Channel name already in use"), want: "Channel name already in use"},
		{name: "invalid credentials", err: InvalidCredentials(), want: "invalid email or password"},
		{name: "plain error", err: stderrors.New("boom"), want: "boom"},
		{name: "nil", err: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	if !Is(InvalidCredentials(), KindAuth) {
		t.Error("InvalidCredentials kind")
	}
	if !Is(DuplicateAccount("a@b.c"), KindDuplicate) {
		t.Error("DuplicateAccount kind")
	}
	if !Is(Transport(Op("x"), stderrors.New("refused")), KindNetwork) {
		t.Error("Transport kind")
	}
}
