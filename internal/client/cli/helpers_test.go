package cli

import (
	"bufio"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/dmitrijs2005/usermanager/internal/models"
)

// stubInputs feeds texts and passwords to the prompt seams in order.
func stubInputs(t *testing.T, texts []string, passwords ...string) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(texts) == 0 {
			return "", io.EOF
		}
		s := texts[0]
		texts = texts[1:]
		return s, nil
	}
	getPassword = func(_ io.Writer, _ string) ([]byte, error) {
		if len(passwords) == 0 {
			return nil, io.EOF
		}
		p := passwords[0]
		passwords = passwords[1:]
		return []byte(p), nil
	}
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// capturePrintln records everything the CLI prints.
func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var mu sync.Mutex
	lines := []string{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		s := ""
		for i, v := range a {
			if i > 0 {
				s += " "
			}
			s += toString(v)
		}
		lines = append(lines, s)
		return len(s), nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case interface{ String() string }:
		return x.String()
	default:
		return ""
	}
}

type fakeClient struct {
	regReq  models.RegisterRequest
	regResp models.RegisterResponse
	regErr  error

	authReq  models.AuthenticateRequest
	authUser models.PublicUser
	authErr  error

	emailReq  models.ChangeEmailRequest
	emailResp models.ChangeEmailResponse
	emailErr  error

	pwReq  models.ChangePasswordRequest
	pwResp models.ChangePasswordResponse
	pwErr  error

	pingErr error
	closed  bool
}

func (f *fakeClient) Close() error { f.closed = true; return nil }

func (f *fakeClient) RegisterUser(_ context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	f.regReq = req
	return f.regResp, f.regErr
}

func (f *fakeClient) AuthenticateUser(_ context.Context, req models.AuthenticateRequest) (models.PublicUser, error) {
	f.authReq = req
	return f.authUser, f.authErr
}

func (f *fakeClient) UpdateUserEmail(_ context.Context, req models.ChangeEmailRequest) (models.ChangeEmailResponse, error) {
	f.emailReq = req
	return f.emailResp, f.emailErr
}

func (f *fakeClient) UpdateUserPassword(_ context.Context, req models.ChangePasswordRequest) (models.ChangePasswordResponse, error) {
	f.pwReq = req
	return f.pwResp, f.pwErr
}

func (f *fakeClient) Ping(context.Context) error { return f.pingErr }
