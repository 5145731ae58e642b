package wire

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/usermanager/internal/models"
	"github.com/google/uuid"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	KeyID                      = "id"
	KeyUserID                  = "user_id"
	KeyUsername                = "username"
	KeyPassword                = "password"
	KeyEmail                   = "email"
	KeyResult                  = "result"
	KeyCreatedAt               = "created_at"
	KeyUpdatedAt               = "updated_at"
	KeyNewEmail                = "new_email"
	KeyNewEmailConfirmation    = "new_email_confirmation"
	KeyOldPassword             = "old_password"
	KeyNewPassword             = "new_password"
	KeyNewPasswordConfirmation = "new_password_confirmation"
)

// ErrMalformed marks a struct whose field has the wrong kind.
var ErrMalformed = errors.New("malformed message")

func newStruct(kv ...string) *structpb.Struct {
	fields := make(map[string]*structpb.Value, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields[kv[i]] = structpb.NewStringValue(kv[i+1])
	}
	return &structpb.Struct{Fields: fields}
}

// str reads a string field. Missing and null fields read as "".
func str(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", nil
	}
	switch k := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		return k.StringValue, nil
	case *structpb.Value_NullValue, nil:
		return "", nil
	default:
		return "", fmt.Errorf("%w: field %q is not a string", ErrMalformed, key)
	}
}

type reader struct {
	s   *structpb.Struct
	err error
}

func (r *reader) str(key string) string {
	if r.err != nil {
		return ""
	}
	v, err := str(r.s, key)
	r.err = err
	return v
}

// id parses a user identifier. Unparseable values read as uuid.Nil so
// validation can reject them alongside the other fields.
func (r *reader) id(key string) uuid.UUID {
	v := r.str(key)
	id, err := uuid.Parse(v)
	if err != nil {
		return uuid.Nil
	}
	return id
}

func (r *reader) time(key string) time.Time {
	v := r.str(key)
	if v == "" || r.err != nil {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		r.err = fmt.Errorf("%w: field %q: %v", ErrMalformed, key, err)
	}
	return t
}

func EncodeRegisterRequest(req models.RegisterRequest) *structpb.Struct {
	return newStruct(KeyUsername, req.Username, KeyPassword, req.Password, KeyEmail, req.Email)
}

func DecodeRegisterRequest(s *structpb.Struct) (models.RegisterRequest, error) {
	r := &reader{s: s}
	req := models.RegisterRequest{Username: r.str(KeyUsername), Password: r.str(KeyPassword), Email: r.str(KeyEmail)}
	return req, r.err
}

// EncodeRegisterResponse omits the id unless the user was registered.
func EncodeRegisterResponse(resp models.RegisterResponse) *structpb.Struct {
	if resp.Result != models.Registered {
		return newStruct(KeyResult, resp.Result.String())
	}
	return newStruct(KeyID, resp.ID.String(), KeyResult, resp.Result.String())
}

func DecodeRegisterResponse(s *structpb.Struct) (models.RegisterResponse, error) {
	r := &reader{s: s}
	id, result := r.str(KeyID), r.str(KeyResult)
	if r.err != nil {
		return models.RegisterResponse{}, r.err
	}
	var resp models.RegisterResponse
	var err error
	if resp.Result, err = models.ParseRegisterResult(result); err != nil {
		return models.RegisterResponse{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if id != "" {
		if resp.ID, err = uuid.Parse(id); err != nil {
			return models.RegisterResponse{}, fmt.Errorf("%w: field %q: %v", ErrMalformed, KeyID, err)
		}
	}
	return resp, nil
}

func EncodeAuthenticateRequest(req models.AuthenticateRequest) *structpb.Struct {
	return newStruct(KeyUsername, req.Username, KeyPassword, req.Password)
}

func DecodeAuthenticateRequest(s *structpb.Struct) (models.AuthenticateRequest, error) {
	r := &reader{s: s}
	req := models.AuthenticateRequest{Username: r.str(KeyUsername), Password: r.str(KeyPassword)}
	return req, r.err
}

func EncodePublicUser(u models.PublicUser) *structpb.Struct {
	s := newStruct(
		KeyID, u.ID.String(),
		KeyUsername, u.Username,
		KeyEmail, u.Email,
		KeyCreatedAt, u.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if u.UpdatedAt != nil {
		s.Fields[KeyUpdatedAt] = structpb.NewStringValue(u.UpdatedAt.UTC().Format(time.RFC3339Nano))
	} else {
		s.Fields[KeyUpdatedAt] = structpb.NewNullValue()
	}
	return s
}

func DecodePublicUser(s *structpb.Struct) (models.PublicUser, error) {
	r := &reader{s: s}
	idText := r.str(KeyID)
	u := models.PublicUser{
		Username:  r.str(KeyUsername),
		Email:     r.str(KeyEmail),
		CreatedAt: r.time(KeyCreatedAt),
	}
	if updated := r.time(KeyUpdatedAt); !updated.IsZero() {
		u.UpdatedAt = &updated
	}
	if r.err != nil {
		return models.PublicUser{}, r.err
	}
	id, err := uuid.Parse(idText)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("%w: field %q: %v", ErrMalformed, KeyID, err)
	}
	u.ID = id
	return u, nil
}

func EncodeChangeEmailRequest(req models.ChangeEmailRequest) *structpb.Struct {
	return newStruct(
		KeyUserID, req.UserID.String(),
		KeyPassword, req.Password,
		KeyNewEmail, req.NewEmail,
		KeyNewEmailConfirmation, req.NewEmailConfirmation,
	)
}

func DecodeChangeEmailRequest(s *structpb.Struct) (models.ChangeEmailRequest, error) {
	r := &reader{s: s}
	req := models.ChangeEmailRequest{
		UserID:               r.id(KeyUserID),
		Password:             r.str(KeyPassword),
		NewEmail:             r.str(KeyNewEmail),
		NewEmailConfirmation: r.str(KeyNewEmailConfirmation),
	}
	return req, r.err
}

func EncodeChangeEmailResponse(resp models.ChangeEmailResponse) *structpb.Struct {
	return newStruct(KeyResult, resp.Result.String())
}

func DecodeChangeEmailResponse(s *structpb.Struct) (models.ChangeEmailResponse, error) {
	text, err := str(s, KeyResult)
	if err != nil {
		return models.ChangeEmailResponse{}, err
	}
	result, err := models.ParseChangeEmailResult(text)
	if err != nil {
		return models.ChangeEmailResponse{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return models.ChangeEmailResponse{Result: result}, nil
}

func EncodeChangePasswordRequest(req models.ChangePasswordRequest) *structpb.Struct {
	return newStruct(
		KeyUserID, req.UserID.String(),
		KeyOldPassword, req.OldPassword,
		KeyNewPassword, req.NewPassword,
		KeyNewPasswordConfirmation, req.NewPasswordConfirmation,
	)
}

func DecodeChangePasswordRequest(s *structpb.Struct) (models.ChangePasswordRequest, error) {
	r := &reader{s: s}
	req := models.ChangePasswordRequest{
		UserID:                  r.id(KeyUserID),
		OldPassword:             r.str(KeyOldPassword),
		NewPassword:             r.str(KeyNewPassword),
		NewPasswordConfirmation: r.str(KeyNewPasswordConfirmation),
	}
	return req, r.err
}

func EncodeChangePasswordResponse(resp models.ChangePasswordResponse) *structpb.Struct {
	return newStruct(KeyResult, resp.Result.String())
}

func DecodeChangePasswordResponse(s *structpb.Struct) (models.ChangePasswordResponse, error) {
	text, err := str(s, KeyResult)
	if err != nil {
		return models.ChangePasswordResponse{}, err
	}
	result, err := models.ParseChangePasswordResult(text)
	if err != nil {
		return models.ChangePasswordResponse{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return models.ChangePasswordResponse{Result: result}, nil
}
