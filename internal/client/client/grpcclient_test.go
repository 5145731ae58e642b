package client

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/apperrors"
	"github.com/dmitrijs2005/usermanager/internal/cryptox"
	"github.com/dmitrijs2005/usermanager/internal/logging"
	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/dmitrijs2005/usermanager/internal/server/clock"
	gs "github.com/dmitrijs2005/usermanager/internal/server/grpc"
	"github.com/dmitrijs2005/usermanager/internal/server/repositories/users"
	"github.com/dmitrijs2005/usermanager/internal/server/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

/*************
 * End-to-end over bufconn
 *************/

func newBufconnClient(t *testing.T) *GRPCClient {
	t.Helper()

	h, err := cryptox.NewArgon2Hasher("pepper", cryptox.Argon2Params{Time: 1, MemoryKiB: 8 * 1024, Threads: 1, KeyLen: 32})
	require.NoError(t, err)
	repo := users.NewMemoryRepository()
	svc := services.NewUserService(repo, clock.NewFixed(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)), h, logging.Nop{})

	lis := bufconn.Listen(1 << 20)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = gs.NewGRPCServer("", logging.Nop{}, svc, nil).Serve(ctx, lis)
	}()
	t.Cleanup(func() { cancel(); <-done })

	c, err := NewUserManagerClient("passthrough:///bufnet", 2*time.Second,
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) { return lis.DialContext(ctx) }))
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGRPCClient_EndToEnd(t *testing.T) {
	c := newBufconnClient(t)
	ctx := context.Background()

	require.Eventually(t, func() bool { return c.Ping(ctx) == nil }, 2*time.Second, 10*time.Millisecond)

	reg, err := c.RegisterUser(ctx, models.RegisterRequest{Username: "alice", Password: "Secret123", Email: "alice@x.com"})
	require.NoError(t, err)
	require.Equal(t, models.Registered, reg.Result)
	require.NotEqual(t, uuid.Nil, reg.ID)

	_, err = c.RegisterUser(ctx, models.RegisterRequest{Username: "alice", Password: "Secret123", Email: "other@x.com"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Violations, 1)
	assert.Equal(t, "username", verr.Violations[0].Field)

	user, err := c.AuthenticateUser(ctx, models.AuthenticateRequest{Username: "alice@x.com", Password: "Secret123"})
	require.NoError(t, err)
	assert.Equal(t, reg.ID, user.ID)
	assert.Nil(t, user.UpdatedAt)

	_, err = c.AuthenticateUser(ctx, models.AuthenticateRequest{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	emailResp, err := c.UpdateUserEmail(ctx, models.ChangeEmailRequest{
		UserID: reg.ID, Password: "wrong", NewEmail: "new@x.com", NewEmailConfirmation: "new@x.com",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ChangeEmailInvalidPassword, emailResp.Result)

	pwResp, err := c.UpdateUserPassword(ctx, models.ChangePasswordRequest{
		UserID: reg.ID, OldPassword: "Secret123", NewPassword: "Fresh4567", NewPasswordConfirmation: "Fresh4567",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ChangePasswordSuccess, pwResp.Result)

	_, err = c.UpdateUserPassword(ctx, models.ChangePasswordRequest{
		UserID: uuid.New(), OldPassword: "Secret123", NewPassword: "Fresh4567", NewPasswordConfirmation: "Fresh4567",
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

/*************
 * Error mapping
 *************/

type fakeUserService struct {
	err error
	out *structpb.Struct
}

func (f *fakeUserService) RegisterUser(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error) {
	return f.out, f.err
}

func (f *fakeUserService) AuthenticateUser(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error) {
	return f.out, f.err
}

func (f *fakeUserService) UpdateUserEmail(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error) {
	return f.out, f.err
}

func (f *fakeUserService) UpdateUserPassword(context.Context, *structpb.Struct, ...grpc.CallOption) (*structpb.Struct, error) {
	return f.out, f.err
}

func TestMapError(t *testing.T) {
	s := &GRPCClient{}

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"invalid credentials", apperrors.InvalidCredentials().ToGRPCStatus(), ErrInvalidCredentials},
		{"user not found", apperrors.UserNotFound(uuid.New()).ToGRPCStatus(), ErrUserNotFound},
		{"internal", apperrors.Internal(errors.New("x")).ToGRPCStatus(), ErrServer},
		{"unavailable", status.Error(codes.Unavailable, "down"), ErrUnavailable},
		{"deadline", status.Error(codes.DeadlineExceeded, "slow"), ErrUnavailable},
		{"canceled", status.Error(codes.Canceled, "bye"), context.Canceled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.mapError(tt.in)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestMapError_PlainStatusKeepsOriginal(t *testing.T) {
	s := &GRPCClient{}
	in := status.Error(codes.PermissionDenied, "nope")
	got := s.mapError(in)
	assert.ErrorIs(t, got, in)
	assert.Contains(t, got.Error(), "rpc error")
}

func TestRegisterUser_MalformedResponse(t *testing.T) {
	bad, _ := structpb.NewStruct(map[string]any{"result": "Perhaps"})
	s := &GRPCClient{client: &fakeUserService{out: bad}}

	_, err := s.RegisterUser(context.Background(), models.RegisterRequest{})
	assert.ErrorIs(t, err, ErrServer)
}

func TestValidationError_Message(t *testing.T) {
	e := &ValidationError{Violations: []apperrors.FieldViolation{
		{Field: "username", Message: "Please enter your desired username."},
		{Field: "email", Message: "Please enter your e-mail address."},
	}}
	assert.Equal(t, "validation failed: username: Please enter your desired username.; email: Please enter your e-mail address.", e.Error())
}
