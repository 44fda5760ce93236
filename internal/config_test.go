package internal_test

import (
	"os"

	"github.com/frahmantamala/expense-tracker/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Config", func() {
	Describe("LoadConfigFromEnv", func() {
		BeforeEach(func() {
			for _, key := range []string{"PORT", "MONGO_URI", "DATABASE_URL", "DB_DRIVER", "ALLOWED_ORIGINS", "STRICT_CATEGORIES"} {
				os.Unsetenv(key)
			}
		})

		It("should fall back to the defaults", func() {
			cfg := internal.LoadConfigFromEnv()

			Expect(cfg.Server.Port).To(Equal(5000))
			Expect(cfg.Database.Driver).To(Equal(internal.DriverMongo))
			Expect(cfg.Database.Collection).To(Equal("expenses"))
			Expect(cfg.Expense.StrictCategories).To(BeFalse())
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should read the mongo uri and port from the environment", func() {
			os.Setenv("PORT", "8088")
			os.Setenv("MONGO_URI", "mongodb://db:27017")
			os.Setenv("STRICT_CATEGORIES", "true")
			DeferCleanup(func() {
				os.Unsetenv("PORT")
				os.Unsetenv("MONGO_URI")
				os.Unsetenv("STRICT_CATEGORIES")
			})

			cfg := internal.LoadConfigFromEnv()

			Expect(cfg.Server.Port).To(Equal(8088))
			Expect(cfg.Database.Source).To(Equal("mongodb://db:27017"))
			Expect(cfg.Expense.StrictCategories).To(BeTrue())
		})

		It("should ignore a non numeric port", func() {
			os.Setenv("PORT", "abc")
			DeferCleanup(func() { os.Unsetenv("PORT") })

			Expect(internal.LoadConfigFromEnv().Server.Port).To(Equal(5000))
		})
	})

	Describe("Validate", func() {
		var cfg *internal.Config

		BeforeEach(func() {
			cfg = internal.DefaultConfig()
		})

		It("should reject an unknown driver", func() {
			cfg.Database.Driver = "redis"
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("unknown driver"))
		})

		It("should accept the memory driver without a source", func() {
			cfg.Database.Driver = internal.DriverMemory
			cfg.Database.Source = ""
			Expect(cfg.Validate()).To(Succeed())
		})

		It("should treat a blank source as missing and trim the DSN", func() {
			cfg.Database.Source = "   "
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("source is required")))

			cfg.Database.Source = " mongodb://localhost:27017/expenses \n"
			Expect(cfg.Validate()).To(Succeed())
			Expect(cfg.Database.GetDSN()).To(Equal("mongodb://localhost:27017/expenses"))
		})

		It("should reject an origin without scheme", func() {
			cfg.Server.AllowedOrigins = "example.com"
			Expect(cfg.Validate()).To(MatchError(ContainSubstring("invalid allowed origin")))
		})

		It("should accept wildcard and multiple origins", func() {
			cfg.Server.AllowedOrigins = "*, https://app.example.com/ ,"
			Expect(cfg.Validate()).To(Succeed())
			Expect(cfg.Server.Origins()).To(Equal([]string{"*", "https://app.example.com"}))
		})

		It("should aggregate errors from every section", func() {
			cfg.Server.Port = 0
			cfg.Observability.Logging.Format = "xml"
			err := cfg.Validate()
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("server config"))
			Expect(err.Error()).To(ContainSubstring("logging config"))
		})
	})
})
