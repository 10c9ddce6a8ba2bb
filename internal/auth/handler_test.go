package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/identity-service/internal"
	"github.com/frahmantamala/identity-service/internal/auth"
	"github.com/frahmantamala/identity-service/internal/credential"
	"github.com/frahmantamala/identity-service/internal/transport"
	"github.com/frahmantamala/identity-service/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Auth Handler", func() {
	var (
		repo    *mockRepository
		handler *auth.Handler
	)

	BeforeEach(func() {
		repo = newMockRepository()
		repo.add("admin-1", "admin_demo", "secret", user.UserTypeAdmin)
		repo.add("std-1", "standard_demo", "secret", user.UserTypeStandard)
		service := auth.NewService(repo, credential.MD5Hasher{}, quietLogger())
		handler = &auth.Handler{BaseHandler: transport.NewBaseHandler(quietLogger()), Service: service}
	})

	Describe("Login", func() {
		login := func(body string) *httptest.ResponseRecorder {
			req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			handler.Login(w, req)
			return w
		}

		It("should answer 200 for an admin", func() {
			w := login(`{"username":"admin_demo","password":"secret"}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp auth.LoginResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Message).To(Equal("Login successful"))
		})

		It("should answer 401 for a standard user", func() {
			w := login(`{"username":"standard_demo","password":"secret"}`)
			Expect(w.Code).To(Equal(http.StatusUnauthorized))

			var resp map[string]map[string]interface{}
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp["error"]["code"]).To(Equal(string(internal.ErrCodeInvalidCredentials)))
		})

		It("should answer 401 for missing fields", func() {
			Expect(login(`{"username":"admin_demo"}`).Code).To(Equal(http.StatusUnauthorized))
		})

		It("should answer 400 for a malformed body", func() {
			Expect(login(`{"username":`).Code).To(Equal(http.StatusBadRequest))
		})

		It("should answer 500 when the store fails", func() {
			repo.errorToReturn = errors.New("db down")
			Expect(login(`{"username":"admin_demo","password":"secret"}`).Code).To(Equal(http.StatusInternalServerError))
		})
	})

	Describe("BasicAuthMiddleware", func() {
		var (
			reached   bool
			caller    internal.Caller
			protected http.Handler
		)

		BeforeEach(func() {
			reached = false
			caller = internal.Caller{}
			protected = handler.BasicAuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				reached = true
				caller, _ = internal.CallerFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			}))
		})

		It("should pass an admin through with the caller on the context", func() {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.SetBasicAuth("admin_demo", "secret")
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusNoContent))
			Expect(reached).To(BeTrue())
			Expect(caller.UID).To(Equal("admin-1"))
			Expect(caller.Username).To(Equal("admin_demo"))
		})

		It("should challenge a request without credentials", func() {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(w.Header().Get("WWW-Authenticate")).To(HavePrefix("Basic realm="))
			Expect(reached).To(BeFalse())
		})

		It("should challenge a non-admin", func() {
			req := httptest.NewRequest(http.MethodGet, "/users", nil)
			req.SetBasicAuth("standard_demo", "secret")
			w := httptest.NewRecorder()

			protected.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusUnauthorized))
			Expect(reached).To(BeFalse())
		})
	})

	It("should find no caller on a bare context", func() {
		_, ok := internal.CallerFromContext(context.Background())
		Expect(ok).To(BeFalse())
	})
})
