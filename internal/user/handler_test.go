package user_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/identity-service/db/migrations"
	"github.com/frahmantamala/identity-service/internal/core/database"
	"github.com/frahmantamala/identity-service/internal/credential"
	"github.com/frahmantamala/identity-service/internal/transport"
	"github.com/frahmantamala/identity-service/internal/user"
	userPostgres "github.com/frahmantamala/identity-service/internal/user/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type errorBody struct {
	Error struct {
		Type    string `json:"type"`
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

var _ = Describe("User Handler Integration", func() {
	var (
		handler *user.Handler
		router  *chi.Mux
	)

	do := func(method, path, body string) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		ctx := context.Background()
		sqlDB, gdb, err := database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(sqlDB.Close)
		Expect(migrations.Up(ctx, sqlDB.DB, "sqlite")).To(Succeed())

		service := user.NewService(userPostgres.NewStore(gdb), credential.MD5Hasher{}, nil, quietLogger())
		handler = &user.Handler{BaseHandler: transport.NewBaseHandler(quietLogger()), Service: service}

		router = chi.NewRouter()
		router.Get("/users", handler.ListUsers)
		router.Post("/users", handler.CreateUser)
		router.Get("/users/{uid}", handler.GetUser)
		router.Put("/users/{uid}", handler.UpdateUser)
		router.Patch("/users/{uid}", handler.UpdateUser)
	})

	It("should create a user and return it without the password", func() {
		w := do(http.MethodPost, "/users", `{
			"uid": "u1",
			"userType": 3,
			"createdAt": 1700000000,
			"lastEntryAt": "2024-01-02 03:04:05",
			"password": "pw",
			"disabled": 0,
			"firstName": "Ada",
			"lastName": "Lovelace",
			"companies": ["001", "002"]
		}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Header().Get("Location")).To(Equal("/api/v1/users/u1"))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))

		var resp user.UserWithCompaniesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.UID).To(Equal("u1"))
		Expect(resp.UserType).To(Equal(3))
		Expect(resp.CreatedAt).To(Equal(int64(1700000000)))
		Expect(resp.LastEntryAt).To(Equal("2024-01-02 03:04:05"))
		Expect(resp.Username).To(Equal("Ada Lovelace"))
		Expect(resp.Companies).To(Equal([]string{"001", "002"}))
	})

	It("should answer 400 for a user type outside 1..3", func() {
		w := do(http.MethodPost, "/users", `{"userType": 9, "password": "pw"}`)
		Expect(w.Code).To(Equal(http.StatusBadRequest))

		var resp errorBody
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Error.Type).To(Equal("VALIDATION_ERROR"))

		list := do(http.MethodGet, "/users", "")
		Expect(strings.TrimSpace(list.Body.String())).To(Equal("[]"))
	})

	It("should answer 400 for a body of the wrong type", func() {
		Expect(do(http.MethodPost, "/users", `{"userType": "admin", "password": "pw"}`).Code).To(Equal(http.StatusBadRequest))
		Expect(do(http.MethodPost, "/users", `not json`).Code).To(Equal(http.StatusBadRequest))
	})

	It("should list users as a bare array with companies", func() {
		Expect(do(http.MethodPost, "/users", `{"uid":"a","password":"pw","username":"alpha","companies":["001"]}`).Code).To(Equal(http.StatusCreated))
		Expect(do(http.MethodPost, "/users", `{"uid":"b","password":"pw","username":"beta"}`).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodGet, "/users", "")
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp []user.UserWithCompaniesResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp).To(HaveLen(2))
		Expect(resp[0].Username).To(Equal("alpha"))
		Expect(resp[0].Companies).To(Equal([]string{"001"}))
		Expect(resp[1].Username).To(Equal("beta"))
		Expect(resp[1].Companies).To(BeEmpty())
	})

	It("should render an empty companies array rather than null", func() {
		Expect(do(http.MethodPost, "/users", `{"uid":"a","password":"pw"}`).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodGet, "/users/a", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"companies":[]`))
	})

	It("should answer 404 for an unknown uid", func() {
		w := do(http.MethodGet, "/users/missing", "")
		Expect(w.Code).To(Equal(http.StatusNotFound))

		var resp errorBody
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		Expect(resp.Error.Code).To(Equal("USER_NOT_FOUND"))
	})

	DescribeTable("should merge a partial update",
		func(method string) {
			Expect(do(http.MethodPost, "/users", `{"uid":"u1","password":"pw","firstName":"A","lastName":"B"}`).Code).To(Equal(http.StatusCreated))

			w := do(method, "/users/u1", `{"disabled": 1}`)
			Expect(w.Code).To(Equal(http.StatusOK))

			var resp user.UserResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.FirstName).To(Equal("A"))
			Expect(resp.LastName).To(Equal("B"))
			Expect(resp.Disabled).To(Equal(1))
		},
		Entry("PUT", http.MethodPut),
		Entry("PATCH", http.MethodPatch),
	)

	It("should ignore a uid in the update body", func() {
		Expect(do(http.MethodPost, "/users", `{"uid":"u1","password":"pw"}`).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodPut, "/users/u1", `{"uid":"other","firstName":"C"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(do(http.MethodGet, "/users/other", "").Code).To(Equal(http.StatusNotFound))
		Expect(do(http.MethodGet, "/users/u1", "").Body.String()).To(ContainSubstring(`"firstName":"C"`))
	})

	It("should decode escaped characters in the uid segment", func() {
		Expect(do(http.MethodPost, "/users", `{"uid":"org/7&x","password":"pw"}`).Code).To(Equal(http.StatusCreated))

		w := do(http.MethodGet, "/users/org%2F7%26x", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var got user.UserWithCompaniesResponse
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got.UID).To(Equal("org/7&x"))

		w = do(http.MethodPatch, "/users/org%2F7%26x", `{"lastName":"Z"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"lastName":"Z"`))
	})

	It("should answer 404 when updating an unknown uid", func() {
		Expect(do(http.MethodPut, "/users/missing", `{"disabled": 1}`).Code).To(Equal(http.StatusNotFound))
	})

	It("should answer 400 for an invalid disabled value", func() {
		Expect(do(http.MethodPost, "/users", `{"uid":"u1","password":"pw"}`).Code).To(Equal(http.StatusCreated))
		Expect(do(http.MethodPut, "/users/u1", `{"disabled": 2}`).Code).To(Equal(http.StatusBadRequest))
	})
})
