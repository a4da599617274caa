package main

import (
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/datatable-go"
)

var _ = Describe("loadConfig", func() {
	var dir string

	BeforeEach(func() {
		dir = GinkgoT().TempDir()
	})

	writeConfig := func(content string) string {
		path := filepath.Join(dir, "config.yaml")
		Expect(os.WriteFile(path, []byte(content), 0o644)).To(Succeed())
		return path
	}

	It("falls back to defaults when the file does not exist", func() {
		cfg, err := loadConfig(filepath.Join(dir, "missing.yaml"), nil)
		Expect(err).ToNot(HaveOccurred())

		Expect(cfg.DBPath).To(Equal(defaultDBPath))
		Expect(cfg.PerPage).To(Equal(datatable.DefaultPerPage))
		Expect(cfg.PerPageOptions).To(Equal(datatable.DefaultPerPageOptions))
		Expect(cfg.SortDirection).To(Equal("asc"))
		Expect(cfg.LoadingDelay).To(Equal(datatable.DefaultLoadingDelay))
		Expect(cfg.QueryTimeout).To(Equal(defaultQueryTimeout))
		Expect(cfg.LogFile).To(BeEmpty())
	})

	It("reads the config file", func() {
		path := writeConfig(`
db-path: /tmp/demo.db
per-page: 25
per-page-options: [25, 50]
sort-direction: desc
loading-delay: 500ms
query-timeout: 2s
log-file: /tmp/tablectl.log
`)
		cfg, err := loadConfig(path, nil)
		Expect(err).ToNot(HaveOccurred())

		Expect(cfg.DBPath).To(Equal("/tmp/demo.db"))
		Expect(cfg.PerPage).To(Equal(25))
		Expect(cfg.PerPageOptions).To(Equal([]int{25, 50}))
		Expect(cfg.SortDirection).To(Equal("desc"))
		Expect(cfg.LoadingDelay).To(Equal(500 * time.Millisecond))
		Expect(cfg.QueryTimeout).To(Equal(2 * time.Second))
		Expect(cfg.LogFile).To(Equal("/tmp/tablectl.log"))
	})

	It("lets the environment override the file", func() {
		path := writeConfig("per-page-options: [10, 20]\n")
		GinkgoT().Setenv("TABLECTL_PER_PAGE", "20")
		GinkgoT().Setenv("TABLECTL_DB_PATH", "env.db")

		cfg, err := loadConfig(path, nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(cfg.PerPage).To(Equal(20))
		Expect(cfg.DBPath).To(Equal("env.db"))
	})

	It("rejects a row count that is not an option", func() {
		path := writeConfig("per-page: 30\nper-page-options: [10, 20]\n")
		_, err := loadConfig(path, nil)
		Expect(err).To(MatchError(ContainSubstring("per-page 30 is not one of per-page-options")))
	})

	It("rejects an unknown sort direction", func() {
		path := writeConfig("sort-direction: up\n")
		_, err := loadConfig(path, nil)
		Expect(err).To(MatchError(ContainSubstring("sort-direction must be asc or desc")))
	})

	It("fails on a malformed file", func() {
		path := writeConfig("per-page: [\n")
		_, err := loadConfig(path, nil)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("config.tableConfig", func() {
	It("carries the settings into the controller configuration", func() {
		c := config{
			PerPage:        20,
			PerPageOptions: []int{10, 20},
			SortDirection:  "desc",
			LoadingDelay:   time.Second,
		}

		tc := c.tableConfig()
		Expect(tc.PerPage).To(Equal(20))
		Expect(tc.PerPageOptions).To(Equal([]int{10, 20}))
		Expect(tc.SortDirection).To(Equal(datatable.Desc))
		Expect(tc.LoadingDelay).To(Equal(time.Second))
	})
})
