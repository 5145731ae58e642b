package grpc

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/wire"
	"github.com/google/uuid"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// ---- fakes ----

type fakeUsers struct {
	regResp models.RegisterResponse
	regErr  error
	regReq  models.RegisterRequest

	authResp models.PublicUser
	authErr  error

	emailResp models.ChangeEmailResponse
	emailErr  error
	emailReq  models.ChangeEmailRequest

	pwResp models.ChangePasswordResponse
	pwErr  error
}

func (f *fakeUsers) Register(_ context.Context, req models.RegisterRequest) (models.RegisterResponse, error) {
	f.regReq = req
	return f.regResp, f.regErr
}

func (f *fakeUsers) Authenticate(context.Context, models.AuthenticateRequest) (models.PublicUser, error) {
	return f.authResp, f.authErr
}

func (f *fakeUsers) ChangeEmail(_ context.Context, req models.ChangeEmailRequest) (models.ChangeEmailResponse, error) {
	f.emailReq = req
	return f.emailResp, f.emailErr
}

func (f *fakeUsers) ChangePassword(context.Context, models.ChangePasswordRequest) (models.ChangePasswordResponse, error) {
	return f.pwResp, f.pwErr
}

func newServer(u userService) *GRPCServer {
	return NewGRPCServer("127.0.0.1:0", logging.Nop{}, u, nil)
}

// ---- tests ----

func TestRegisterUser_OK(t *testing.T) {
	id := uuid.New()
	u := &fakeUsers{regResp: models.RegisterResponse{ID: id, Result: models.Registered}}
	s := newServer(u)

	out, err := s.RegisterUser(context.Background(), wire.EncodeRegisterRequest(models.RegisterRequest{
		Username: "alice", Password: "Secret123", Email: "alice@x.com",
	}))
	if err != nil {
		t.Fatalf("RegisterUser error: %v", err)
	}
	if u.regReq.Username != "alice" || u.regReq.Email != "alice@x.com" {
		t.Fatalf("request not decoded: %+v", u.regReq)
	}
	resp, err := wire.DecodeRegisterResponse(out)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID != id || resp.Result != models.Registered {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestRegisterUser_MalformedIsInvalidArgument(t *testing.T) {
	s := newServer(&fakeUsers{})
	in, _ := structpb.NewStruct(map[string]any{"username": true})

	_, err := s.RegisterUser(context.Background(), in)
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("want InvalidArgument, got %v", err)
	}
}

func TestAuthenticateUser_InvalidCredentialsIsNotFound(t *testing.T) {
	s := newServer(&fakeUsers{authErr: apperrors.InvalidCredentials()})

	_, err := s.AuthenticateUser(context.Background(), wire.EncodeAuthenticateRequest(models.AuthenticateRequest{Username: "a", Password: "b"}))
	st := status.Convert(err)
	if st.Code() != codes.NotFound {
		t.Fatalf("want NotFound, got %v", st.Code())
	}
	if st.Message() != apperrors.MsgInvalidCredentials {
		t.Fatalf("unexpected message %q", st.Message())
	}
	ae, ok := apperrors.FromGRPCStatus(st)
	if !ok || ae.Code != apperrors.CodeInvalidCredentials {
		t.Fatalf("ErrorInfo not attached: %+v", st.Details())
	}
}

func TestUpdateUserEmail_ValidationCarriesViolations(t *testing.T) {
	verr := apperrors.Validation([]apperrors.FieldViolation{{Field: "new_email", Message: "Please enter a valid e-mail address."}})
	u := &fakeUsers{emailErr: verr}
	s := newServer(u)

	_, err := s.UpdateUserEmail(context.Background(), wire.EncodeChangeEmailRequest(models.ChangeEmailRequest{UserID: uuid.New(), NewEmail: "x"}))
	st := status.Convert(err)
	if st.Code() != codes.InvalidArgument {
		t.Fatalf("want InvalidArgument, got %v", st.Code())
	}
	var found bool
	for _, d := range st.Details() {
		if br, ok := d.(*errdetails.BadRequest); ok && len(br.GetFieldViolations()) == 1 && br.GetFieldViolations()[0].GetField() == "new_email" {
			found = true
		}
	}
	if !found {
		t.Fatalf("BadRequest detail missing: %v", st.Details())
	}
}

func TestUpdateUserEmail_ResultPassesThrough(t *testing.T) {
	id := uuid.New()
	u := &fakeUsers{emailResp: models.ChangeEmailResponse{Result: models.ChangeEmailInUse}}
	s := newServer(u)

	out, err := s.UpdateUserEmail(context.Background(), wire.EncodeChangeEmailRequest(models.ChangeEmailRequest{UserID: id, Password: "p", NewEmail: "b@x.com"}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.emailReq.UserID != id {
		t.Fatalf("user id not decoded: %v", u.emailReq.UserID)
	}
	if got := out.Fields[wire.KeyResult].GetStringValue(); got != "EmailInUse" {
		t.Fatalf("unexpected result %q", got)
	}
}

func TestUpdateUserPassword_ErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want codes.Code
	}{
		{"user not found", apperrors.UserNotFound(uuid.New()), codes.NotFound},
		{"canceled", context.Canceled, codes.Canceled},
		{"deadline", context.DeadlineExceeded, codes.DeadlineExceeded},
		{"internal", apperrors.Internal(errors.New("db error: boom")), codes.Internal},
		{"unclassified", errors.New("boom"), codes.Internal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newServer(&fakeUsers{pwErr: tt.err})
			_, err := s.UpdateUserPassword(context.Background(), wire.EncodeChangePasswordRequest(models.ChangePasswordRequest{UserID: uuid.New()}))
			st := status.Convert(err)
			if st.Code() != tt.want {
				t.Fatalf("want %v, got %v", tt.want, st.Code())
			}
			if tt.want == codes.Internal && st.Message() != apperrors.MsgInternal {
				t.Fatalf("internal cause leaked: %q", st.Message())
			}
		})
	}
}
