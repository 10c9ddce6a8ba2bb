package company_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/identity-service/db/migrations"
	"github.com/frahmantamala/identity-service/internal/company"
	companyPostgres "github.com/frahmantamala/identity-service/internal/company/postgres"
	"github.com/frahmantamala/identity-service/internal/core/database"
	"github.com/frahmantamala/identity-service/internal/credential"
	"github.com/frahmantamala/identity-service/internal/transport"
	"github.com/frahmantamala/identity-service/internal/user"
	userPostgres "github.com/frahmantamala/identity-service/internal/user/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Company Handler Integration", func() {
	var (
		handler *company.Handler
		router  *chi.Mux
		users   *user.Service
	)

	BeforeEach(func() {
		ctx := context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		sqlDB, gdb, err := database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		DeferCleanup(sqlDB.Close)
		Expect(migrations.Up(ctx, sqlDB.DB, "sqlite")).To(Succeed())

		users = user.NewService(userPostgres.NewStore(gdb), credential.MD5Hasher{}, nil, slogger)
		seed := []user.CreateUserDTO{
			{UID: "u1", Password: "pw", Companies: []string{"001", "002"}},
			{UID: "u2", Password: "pw", Companies: []string{"001", "001"}},
			{UID: "u3", Password: "pw"},
		}
		for _, dto := range seed {
			_, err := users.CreateUser(ctx, dto)
			Expect(err).NotTo(HaveOccurred())
		}

		service := company.NewService(companyPostgres.NewCompanyRepository(gdb), slogger)
		handler = company.NewHandler(&transport.BaseHandler{Logger: slogger}, service)

		router = chi.NewRouter()
		router.Get("/companies", handler.GetCompanies)
		router.Get("/companies/{name}/users", handler.GetCompanyUsers)
	})

	It("should handle GET /companies with distinct user counts", func() {
		req := httptest.NewRequest(http.MethodGet, "/companies", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var response company.CompaniesResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.Companies).To(Equal([]company.CompanyResponse{
			{Name: "001", UserCount: 2},
			{Name: "002", UserCount: 1},
		}))
	})

	It("should list the users of one company", func() {
		req := httptest.NewRequest(http.MethodGet, "/companies/001/users", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var response company.CompanyUsersResponse
		Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
		Expect(response.UIDs).To(Equal([]string{"u1", "u2"}))
	})

	It("should answer 404 for an unknown company", func() {
		req := httptest.NewRequest(http.MethodGet, "/companies/zzz/users", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	Context("with reserved characters in the company name", func() {
		BeforeEach(func() {
			_, err := users.CreateUser(context.Background(), user.CreateUserDTO{
				UID:       "u4",
				Password:  "pw",
				Companies: []string{"A/B Corp", "Smith & Sons", "100%"},
			})
			Expect(err).NotTo(HaveOccurred())
		})

		DescribeTable("decodes the name segment before looking it up",
			func(path, name string) {
				req := httptest.NewRequest(http.MethodGet, path, nil)
				w := httptest.NewRecorder()

				router.ServeHTTP(w, req)

				Expect(w.Code).To(Equal(http.StatusOK))
				var response company.CompanyUsersResponse
				Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
				Expect(response.Name).To(Equal(name))
				Expect(response.UIDs).To(Equal([]string{"u4"}))
			},
			Entry("escaped slash", "/companies/A%2FB%20Corp/users", "A/B Corp"),
			Entry("escaped ampersand", "/companies/Smith%20%26%20Sons/users", "Smith & Sons"),
			Entry("literal ampersand", "/companies/Smith%20&%20Sons/users", "Smith & Sons"),
			Entry("escaped percent", "/companies/100%25/users", "100%"),
		)

		It("should reject a segment with a broken escape", func() {
			req := httptest.NewRequest(http.MethodGet, "/companies/x/users", nil)
			req.URL.RawPath = "/companies/A%2FB%zz/users"
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
