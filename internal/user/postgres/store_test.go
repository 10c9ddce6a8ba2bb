package postgres_test

import (
	"errors"

	"github.com/frahmantamala/identity-service/internal/credential"
	"github.com/frahmantamala/identity-service/internal/user"
	userPostgres "github.com/frahmantamala/identity-service/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Store", func() {
	var store *userPostgres.Store

	BeforeEach(func() {
		store = userPostgres.NewStore(gdb)
	})

	countUsers := func() int {
		var n int
		Expect(sqlDB.Get(&n, "SELECT COUNT(*) FROM users")).To(Succeed())
		return n
	}

	It("should commit both tables together", func() {
		err := store.RunInTx(ctx, func(users user.UserRepository, companies user.CompanyRepository) error {
			if err := users.Create(ctx, newRow("u1", "a")); err != nil {
				return err
			}
			return companies.Associate(ctx, "u1", []string{"001"})
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(countUsers()).To(Equal(1))
	})

	It("should roll back the user when the callback fails", func() {
		boom := errors.New("boom")
		err := store.RunInTx(ctx, func(users user.UserRepository, _ user.CompanyRepository) error {
			if err := users.Create(ctx, newRow("u1", "a")); err != nil {
				return err
			}
			return boom
		})
		Expect(errors.Is(err, boom)).To(BeTrue())
		Expect(countUsers()).To(Equal(0))
	})

	It("should roll back the user when the association insert fails", func() {
		_, err := sqlDB.Exec("DROP TABLE user_company")
		Expect(err).NotTo(HaveOccurred())

		service := user.NewService(store, credential.MD5Hasher{}, nil, quietLogger())
		_, err = service.CreateUser(ctx, user.CreateUserDTO{UID: "u1", Password: "pw", Companies: []string{"001"}})
		Expect(err).To(HaveOccurred())
		Expect(countUsers()).To(Equal(0))
	})
})
