package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"eventmanagement/internal/delivery/http/helpers"
	"eventmanagement/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpErr        error
	lastSignUpName   string
	lastSignUpEmail  string
	lastSignUpRole   domain.Role
	loginErr         error
	loginToken       string
	loginUser        *domain.User
	lastLoginName    string
	lastLoginPass    string
}

func (f *fakeAuthService) SignUp(ctx context.Context, username, email, password string, role domain.Role) (*domain.User, error) {
	f.lastSignUpName = username
	f.lastSignUpEmail = email
	f.lastSignUpRole = role
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &domain.User{ID: "u-created", Username: username, Email: email, Role: domain.ParseRole(string(role))}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	f.lastLoginName = username
	f.lastLoginPass = password
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func TestAuthController_SignUp(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		checkUser      func(t *testing.T, user domain.User, fake *fakeAuthService)
	}{
		{
			name:       "success",
			body:       `{"username":"alice","email":"alice@example.com","password":"longenough","role":"Organizer"}`,
			wantStatus: http.StatusCreated,
			checkUser: func(t *testing.T, user domain.User, fake *fakeAuthService) {
				assert.Equal(t, "u-created", user.ID)
				assert.Equal(t, "alice", user.Username)
				assert.Equal(t, domain.RoleOrganizer, user.Role)
				assert.Equal(t, domain.Role("Organizer"), fake.lastSignUpRole)
			},
		},
		{
			name:           "missing username",
			body:           `{"email":"a@example.com","password":"longenough"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "username is required",
		},
		{
			name:           "bad request invalid json",
			body:           `{invalid`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid",
		},
		{
			name:           "duplicate username",
			body:           `{"username":"alice","email":"alice@example.com","password":"longenough"}`,
			fakeErr:        domain.ErrDuplicateUser,
			wantStatus:     http.StatusConflict,
			wantBodySubstr: "already exists",
		},
		{
			name:           "invalid input from service",
			body:           `{"username":"alice","email":"bad","password":"longenough"}`,
			fakeErr:        domain.ErrInvalidInput,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "invalid input",
		},
		{
			name:           "service error",
			body:           `{"username":"alice","email":"alice@example.com","password":"longenough"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{signUpErr: tt.fakeErr}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.SignUp(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope), "response must be valid JSON envelope")
			if tt.wantStatus == http.StatusCreated && tt.checkUser != nil {
				require.Nil(t, envelope.Error, "success response must have error nil")
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var user domain.User
				require.NoError(t, json.Unmarshal(dataBytes, &user))
				tt.checkUser(t, user, fake)
			}
			if tt.wantBodySubstr != "" && envelope.Error != nil {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr, "error message")
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		fakeErr        error
		wantStatus     int
		wantBodySubstr string
		checkResponse  func(t *testing.T, data LoginResponse)
	}{
		{
			name:       "success",
			body:       `{"username":"alice","password":"longenough"}`,
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, data LoginResponse) {
				assert.Equal(t, "tok-123", data.Token)
				require.NotNil(t, data.User)
				assert.Equal(t, "alice", data.User.Username)
			},
		},
		{
			name:           "missing password",
			body:           `{"username":"alice"}`,
			wantStatus:     http.StatusBadRequest,
			wantBodySubstr: "password is required",
		},
		{
			name:           "wrong credentials",
			body:           `{"username":"alice","password":"wrong"}`,
			fakeErr:        domain.ErrInvalidCredentials,
			wantStatus:     http.StatusUnauthorized,
			wantBodySubstr: "invalid credentials",
		},
		{
			name:           "service error",
			body:           `{"username":"alice","password":"longenough"}`,
			fakeErr:        errors.New("db error"),
			wantStatus:     http.StatusInternalServerError,
			wantBodySubstr: "db error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthService{
				loginErr:   tt.fakeErr,
				loginToken: "tok-123",
				loginUser:  &domain.User{ID: "u-1", Username: "alice", Role: domain.RoleOrganizer},
			}
			ctrl := NewAuthController(testLogger, fake)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			ctrl.Login(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code, "status code")
			var envelope helpers.APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			if tt.wantStatus == http.StatusOK && tt.checkResponse != nil {
				require.Nil(t, envelope.Error)
				dataBytes, err := json.Marshal(envelope.Data)
				require.NoError(t, err)
				var data LoginResponse
				require.NoError(t, json.Unmarshal(dataBytes, &data))
				tt.checkResponse(t, data)
			}
			if tt.wantBodySubstr != "" && envelope.Error != nil {
				assert.Contains(t, envelope.Error.Message, tt.wantBodySubstr)
			}
		})
	}
}
