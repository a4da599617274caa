//go:build integration

package sqlboiler_test

import (
	"context"
	"time"

	"github.com/aarondl/sqlboiler/v4/queries/qm"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/datatable-go"
	"github.com/nrfta/datatable-go/sqlboiler"
)

type scoredSubmission struct {
	ID        string    `boil:"id"`
	Title     string    `boil:"title"`
	Score     int       `boil:"score"`
	Status    string    `boil:"status"`
	CreatedAt time.Time `boil:"created_at"`
}

func scoredColumns() []datatable.Column[*scoredSubmission] {
	return []datatable.Column[*scoredSubmission]{
		{Label: "Title", Field: "title"},
		{Label: "Score", Field: "score", Default: true, SortDirection: datatable.Desc},
		{Label: "Submitted", Field: "createdAt"},
	}
}

func scores(rows []*scoredSubmission) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Score
	}
	return out
}

var _ = Describe("PostgreSQL integration", func() {
	var (
		ctx    context.Context
		ids    []string
		table  *sqlboiler.Table[*scoredSubmission]
		src    *sqlboiler.Source[*scoredSubmission]
		loader *datatable.Loader[*scoredSubmission]
		store  *datatable.MemoryQueryStore
		ctrl   *datatable.Controller[*scoredSubmission]
	)

	start := func(rawQuery string) {
		store = datatable.NewMemoryQueryStore(rawQuery)
		ctrl = datatable.NewController(scoredColumns(), loader.Fetch,
			datatable.WithConfig(datatable.NewConfig().WithPerPageOptions(10, 20)),
			datatable.WithQueryStore(store),
		)
		loader.Bind(ctrl)
		ctrl.Start()
	}

	settled := func() []int {
		loader.Wait()
		return scores(ctrl.State().Data)
	}

	BeforeEach(func() {
		ctx = context.Background()
		Expect(CleanupTables(ctx, container.DB)).To(Succeed())

		var err error
		ids, err = SeedSubmissions(ctx, container.DB, 25)
		Expect(err).ToNot(HaveOccurred())
		Expect(ids).To(HaveLen(25))

		table = sqlboiler.NewTable[*scoredSubmission]("submissions", sqlboiler.PostgresDialect, container.DB)
		src = table.Source(sqlboiler.WithTieBreaker("id"))
		loader = datatable.NewSourceLoader[*scoredSubmission](src, datatable.WithTimeout(10*time.Second))
	})

	AfterEach(func() {
		loader.Close()
		if ctrl != nil {
			ctrl.Close()
			ctrl = nil
		}
	})

	It("loads the first page sorted by the default column", func() {
		start("")

		Eventually(settled).Should(Equal([]int{25, 24, 23, 22, 21, 20, 19, 18, 17, 16}))
		Expect(ctrl.State().Total).To(Equal(25))
		Expect(ctrl.State().Data[0].ID).To(Equal(ids[24]))
	})

	It("hydrates paging and sorting from the query string", func() {
		start("page=2&perPage=20&orderBy=score&sortDirection=asc")

		Eventually(settled).Should(Equal([]int{21, 22, 23, 24, 25}))
		Expect(ctrl.Pagination().EmptyRows).To(Equal(15))
	})

	It("sorts by a camelCase column", func() {
		start("orderBy=createdAt&sortDirection=desc")

		Eventually(settled).Should(HaveLen(10))
		Expect(scores(ctrl.State().Data)[0]).To(Equal(25))
	})

	It("refetches from the first page when filters change", func() {
		start("page=3")
		Eventually(settled).Should(HaveLen(5))

		src.SetFilters(qm.Where("status = ?", "open"))
		ctrl.ResetPage()

		Eventually(settled).Should(HaveLen(10))
		Expect(ctrl.State().Total).To(Equal(16))
		Expect(ctrl.Params().Page).To(Equal(0))
		Expect(store.Encode()).To(BeEmpty())
	})

	It("counts through the table helper", func() {
		n, err := table.Count(ctx, qm.Where("status = ?", "closed"))
		Expect(err).ToNot(HaveOccurred())
		Expect(n).To(Equal(int64(9)))
	})
})
