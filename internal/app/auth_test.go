package app

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/mayabazar/booking-api/api"
	"github.com/mayabazar/booking-api/internal/domain"
	"github.com/mayabazar/booking-api/internal/mailer"
	"github.com/mayabazar/booking-api/internal/mocks"
	"github.com/mayabazar/booking-api/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

func validRegisterRequest() api.RegisterRequest {
	return api.RegisterRequest{
		Name:     "Ravi Teja",
		Email:    "ravi@example.com",
		Password: "Pass123!@#",
		Phone:    "+91 98765 43210",
		Location: &api.UserLocation{
			City:        "Hyderabad",
			Coordinates: &api.Coordinates{Lat: 17.385, Lng: 78.4867},
		},
		Preferences: &api.Preferences{
			FavoriteGenres:    []string{"Action"},
			PreferredLanguage: "Telugu",
			BudgetRange:       &api.BudgetRange{Min: 100, Max: 500},
		},
	}
}

func TestRegisterUser(t *testing.T) {
	createdAt := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		input          func() api.RegisterRequest
		userRepoFunc   func(context.Context, *domain.User) error
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.UserResponse
		wantEmail      bool
	}{
		{
			name:  "successful registration",
			input: validRegisterRequest,
			userRepoFunc: func(ctx context.Context, u *domain.User) error {
				u.ID = 1
				u.Version = 1
				u.CreatedAt = createdAt
				return nil
			},
			wantStatus: http.StatusCreated,
			wantResponse: &api.UserResponse{
				Id:    1,
				Name:  "Ravi Teja",
				Email: "ravi@example.com",
				Phone: "+91 98765 43210",
				Location: &api.UserLocation{
					City:        "Hyderabad",
					Coordinates: &api.Coordinates{Lat: 17.385, Lng: 78.4867},
				},
				Preferences: &api.Preferences{
					FavoriteGenres:    []string{"Action"},
					PreferredLanguage: "Telugu",
					BudgetRange:       &api.BudgetRange{Min: 100, Max: 500},
				},
				Points:     0,
				Membership: api.Basic,
				Version:    1,
				CreatedAt:  createdAt,
			},
			wantEmail: true,
		},
		{
			name: "invalid password format",
			input: func() api.RegisterRequest {
				req := validRegisterRequest()
				req.Password = "weak"
				return req
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrInvalidPassword,
		},
		{
			name: "invalid phone",
			input: func() api.RegisterRequest {
				req := validRegisterRequest()
				req.Phone = "call me"
				return req
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: validator.ErrInvalidPhone,
		},
		{
			name: "budget range upper bound below lower bound",
			input: func() api.RegisterRequest {
				req := validRegisterRequest()
				req.Preferences.BudgetRange = &api.BudgetRange{Min: 500, Max: 100}
				return req
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: fmt.Sprintf(validator.ErrMinValue, "Min"),
		},
		{
			name: "duplicate email",
			input: func() api.RegisterRequest {
				req := validRegisterRequest()
				req.Email = "existing@example.com"
				return req
			},
			userRepoFunc: func(ctx context.Context, u *domain.User) error {
				return domain.ErrUserAlreadyExists
			},
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid input data",
		},
		{
			name:  "database error",
			input: validRegisterRequest,
			userRepoFunc: func(ctx context.Context, u *domain.User) error {
				return fmt.Errorf("database connection error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockMailer := mailer.NewMockMailer()

			app := newTestApplication(func(a *Application) {
				a.userRepo = &mocks.MockUserRepo{CreateFunc: tt.userRepoFunc}
				a.mailer = mockMailer
			})

			w, r := executeRequest(t, http.MethodPost, "/users", tt.input())

			app.RegisterUser(w, r)

			if got := w.Code; got != tt.wantStatus {
				t.Errorf("RegisterUser() status = %v, want %v", got, tt.wantStatus)
			}

			if tt.wantResponse != nil {
				var response api.UserResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				if err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}

				if diff := cmp.Diff(tt.wantResponse, &response); diff != "" {
					t.Errorf("RegisterUser() response mismatch (-want +got):\n%s", diff)
				}
			}

			if tt.wantEmail {
				assert.Eventually(t, func() bool {
					return len(mockMailer.GetSentEmails()) == 1
				}, time.Second, 10*time.Millisecond)

				email := mockMailer.GetSentEmails()[0]
				assert.Equal(t, "ravi@example.com", email.Recipient)
				assert.Equal(t, "user_welcome.tmpl", email.TemplateFile)
			} else {
				assert.Empty(t, mockMailer.GetSentEmails())
			}

			checkErrorResponse(t, w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

type LoginTestSuite struct {
	suite.Suite
	app *Application
}

func (s *LoginTestSuite) SetupTest() {
	s.app = newTestApplication()
}

func TestLoginSuite(t *testing.T) {
	suite.Run(t, new(LoginTestSuite))
}

func userWithPassword(id int, password string) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	user := &domain.User{ID: id}
	user.Password.Hash = hash

	return user
}

func (s *LoginTestSuite) TestLogin() {
	tests := []struct {
		name           string
		input          api.LoginRequest
		getByEmailFunc func(context.Context, string) (*domain.User, error)
		setupSession   bool
		wantStatus     int
		wantErrMessage string
		wantResponse   *api.AlreadyLoggedInResponse
		wantUserId     int
	}{
		{
			name: "user is already logged in",
			input: api.LoginRequest{
				Email:    "ravi@example.com",
				Password: "Pass123!@#",
			},
			setupSession: true,
			wantStatus:   http.StatusOK,
			wantResponse: &api.AlreadyLoggedInResponse{Message: "You are already logged in"},
			wantUserId:   1,
		},
		{
			name: "invalid email format",
			input: api.LoginRequest{
				Email:    "not-an-email",
				Password: "Pass123!@#",
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name: "user not found",
			input: api.LoginRequest{
				Email:    "nobody@example.com",
				Password: "Pass123!@#",
			},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, domain.ErrRecordNotFound
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name: "incorrect password",
			input: api.LoginRequest{
				Email:    "ravi@example.com",
				Password: "WrongPass123!@#",
			},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return userWithPassword(1, "Pass123!@#"), nil
			},
			wantStatus:     http.StatusUnauthorized,
			wantErrMessage: ErrInvalidCredentials,
		},
		{
			name: "database error",
			input: api.LoginRequest{
				Email:    "ravi@example.com",
				Password: "Pass123!@#",
			},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return nil, fmt.Errorf("database connection error")
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
		{
			name: "successful login",
			input: api.LoginRequest{
				Email:    "ravi@example.com",
				Password: "Pass123!@#",
			},
			getByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
				return userWithPassword(7, "Pass123!@#"), nil
			},
			wantStatus: http.StatusNoContent,
			wantUserId: 7,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()
			s.app.userRepo = &mocks.MockUserRepo{GetByEmailFunc: tt.getByEmailFunc}

			w, r := executeRequest(s.T(), http.MethodPost, "/users/login", tt.input)

			if tt.setupSession {
				r = setupTestSession(s.T(), s.app, r, 1)
			}

			var gotUserId int
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				s.app.Login(w, r)
				gotUserId = s.app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
			})
			s.app.sessionManager.LoadAndSave(handler).ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)
			s.Equal(tt.wantUserId, gotUserId)

			if tt.wantResponse != nil {
				var response api.AlreadyLoggedInResponse
				s.Require().NoError(json.NewDecoder(w.Body).Decode(&response))
				s.Equal(*tt.wantResponse, response)
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *LoginTestSuite) TestLogout() {
	w, r := executeRequest(s.T(), http.MethodPost, "/users/logout", nil)
	r = setupTestSession(s.T(), s.app, r, 1)

	var gotUserId int
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.app.Logout(w, r)
		gotUserId = s.app.sessionManager.GetInt(r.Context(), SessionKeyUserId.String())
	})
	authenticated(s.app, handler).ServeHTTP(w, r)

	s.Equal(http.StatusNoContent, w.Code)
	s.Zero(gotUserId)
}
