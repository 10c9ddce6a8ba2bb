package internal_test

import (
	"os"
	"time"

	"github.com/frahmantamala/identity-service/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() internal.Config {
	return internal.Config{
		Server: internal.ServerConfig{
			Port:              8080,
			AllowedOrigins:    "*",
			ReadHeaderTimeout: time.Second,
			ReadTimeout:       5 * time.Second,
		},
		Database: internal.DatabaseConfig{
			Driver:       internal.DriverSQLite,
			Source:       ":memory:",
			MaxOpenConns: 1,
			MaxIdleConns: 1,
		},
		Security: internal.SecurityConfig{PasswordHasher: internal.HasherMD5},
		Observability: internal.ObservabilityConfig{
			Logging: internal.LoggingConfig{Level: "info", Format: "json"},
		},
	}
}

var _ = Describe("Config", func() {
	It("should accept a complete configuration", func() {
		cfg := validConfig()
		Expect(cfg.Validate()).To(Succeed())
	})

	DescribeTable("rejected configurations",
		func(mutate func(*internal.Config), fragment string) {
			cfg := validConfig()
			mutate(&cfg)
			Expect(cfg.Validate()).To(MatchError(ContainSubstring(fragment)))
		},
		Entry("port out of range", func(c *internal.Config) { c.Server.Port = 70000 }, "invalid port"),
		Entry("read timeout below header timeout", func(c *internal.Config) { c.Server.ReadTimeout = 0 }, "read_timeout"),
		Entry("negative body limit", func(c *internal.Config) { c.Server.MaxBodyBytes = -1 }, "max_body_bytes"),
		Entry("unknown driver", func(c *internal.Config) { c.Database.Driver = "oracle" }, "unsupported driver"),
		Entry("missing source", func(c *internal.Config) { c.Database.Source = "" }, "source is required"),
		Entry("idle above open", func(c *internal.Config) { c.Database.MaxIdleConns = 2 }, "max_idle_conns"),
		Entry("unknown hasher", func(c *internal.Config) { c.Security.PasswordHasher = "sha1" }, "password_hasher"),
		Entry("weak bcrypt cost", func(c *internal.Config) {
			c.Security.PasswordHasher = internal.HasherBcrypt
			c.Security.BCryptCost = 4
		}, "bcrypt_cost"),
		Entry("unknown log level", func(c *internal.Config) { c.Observability.Logging.Level = "trace" }, "invalid level"),
	)

	It("should split allowed origins and drop blanks", func() {
		s := internal.ServerConfig{AllowedOrigins: " http://a.test , ,http://b.test"}
		Expect(s.Origins()).To(Equal([]string{"http://a.test", "http://b.test"}))
		Expect((&internal.ServerConfig{}).Origins()).To(BeEmpty())
	})

	It("should map dialects to database/sql drivers", func() {
		Expect((&internal.DatabaseConfig{Driver: internal.DriverPostgres}).SQLDriverName()).To(Equal("pgx"))
		Expect((&internal.DatabaseConfig{Driver: internal.DriverMySQL}).SQLDriverName()).To(Equal("mysql"))
		Expect((&internal.DatabaseConfig{Driver: internal.DriverSQLite}).SQLDriverName()).To(Equal("sqlite3"))
	})

	Describe("LoadConfigFromEnv", func() {
		setEnv := func(key, value string) {
			prev, had := os.LookupEnv(key)
			Expect(os.Setenv(key, value)).To(Succeed())
			DeferCleanup(func() {
				if had {
					_ = os.Setenv(key, prev)
				} else {
					_ = os.Unsetenv(key)
				}
			})
		}

		It("should read overrides and keep defaults", func() {
			setEnv("HTTP_PORT", "9090")
			setEnv("DB_DRIVER", "mysql")
			setEnv("DB_SOURCE", "u:p@tcp(db:3306)/identity?parseTime=true")
			setEnv("SECURITY_REQUIRE_BASIC_AUTH", "false")
			setEnv("DB_MAX_OPEN_CONNS", "not-a-number")

			cfg := internal.LoadConfigFromEnv()
			Expect(cfg.Server.Port).To(Equal(9090))
			Expect(cfg.Database.Driver).To(Equal(internal.DriverMySQL))
			Expect(cfg.Database.MaxOpenConns).To(Equal(10))
			Expect(cfg.Security.RequireBasicAuth).To(BeFalse())
			Expect(cfg.Security.PasswordHasher).To(Equal(internal.HasherMD5))
			Expect(cfg.Validate()).To(Succeed())
		})
	})
})
