package postgres_test

import (
	"errors"

	"github.com/frahmantamala/identity-service/internal/user"
	userPostgres "github.com/frahmantamala/identity-service/internal/user/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("User Repository", func() {
	var repo *userPostgres.UserRepository

	BeforeEach(func() {
		repo = userPostgres.NewUserRepository(gdb)
	})

	Describe("Create and GetByID", func() {
		It("should store every column", func() {
			row := newRow("u1", "ada")
			row.UserType = 3
			row.Disabled = 1
			Expect(repo.Create(ctx, row)).To(Succeed())

			got, err := repo.GetByID(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.UserType).To(Equal(3))
			Expect(got.Disabled).To(Equal(1))
			Expect(got.CreatedUnix).To(Equal(int64(1700000000)))
			Expect(got.LastEntryAt.Equal(row.LastEntryAt)).To(BeTrue())
			Expect(got.Username).To(Equal("ada"))
			Expect(got.PasswordDigest).To(Equal("digest"))
		})

		It("should reject a duplicate uid", func() {
			Expect(repo.Create(ctx, newRow("u1", "a"))).To(Succeed())
			Expect(repo.Create(ctx, newRow("u1", "b"))).NotTo(Succeed())
		})

		It("should reject a user type the schema does not allow", func() {
			row := newRow("u1", "a")
			row.UserType = 7
			Expect(repo.Create(ctx, row)).NotTo(Succeed())
		})

		It("should return ErrNotFound for an unknown uid", func() {
			_, err := repo.GetByID(ctx, "missing")
			Expect(errors.Is(err, user.ErrNotFound)).To(BeTrue())
		})
	})

	Describe("List", func() {
		It("should order by username then uid", func() {
			Expect(repo.Create(ctx, newRow("u3", "carol"))).To(Succeed())
			Expect(repo.Create(ctx, newRow("u2", "alice"))).To(Succeed())
			Expect(repo.Create(ctx, newRow("u1", "carol"))).To(Succeed())

			rows, err := repo.List(ctx)
			Expect(err).NotTo(HaveOccurred())
			uids := make([]string, len(rows))
			for i, r := range rows {
				uids[i] = r.UID
			}
			Expect(uids).To(Equal([]string{"u2", "u1", "u3"}))
		})
	})

	Describe("Update", func() {
		It("should write zero values", func() {
			row := newRow("u1", "ada")
			row.Disabled = 1
			Expect(repo.Create(ctx, row)).To(Succeed())

			row.Disabled = 0
			row.FirstName = ""
			Expect(repo.Update(ctx, row)).To(Succeed())

			got, err := repo.GetByID(ctx, "u1")
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Disabled).To(Equal(0))
			Expect(got.FirstName).To(BeEmpty())
			Expect(got.LastName).To(Equal("Last"))
		})

		It("should succeed when nothing changes", func() {
			row := newRow("u1", "ada")
			Expect(repo.Create(ctx, row)).To(Succeed())
			Expect(repo.Update(ctx, row)).To(Succeed())
		})
	})
})
