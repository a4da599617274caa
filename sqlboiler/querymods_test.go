package sqlboiler_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/datatable-go/sqlboiler"
)

var _ = Describe("Params", func() {
	It("returns no mods for an empty request", func() {
		Expect(sqlboiler.Params{}.QueryMods()).To(BeEmpty())
	})

	It("leaves out the offset on the first page", func() {
		params := sqlboiler.Params{
			Limit:   10,
			OrderBy: []sqlboiler.OrderBy{{Column: "created_at", Desc: true}},
		}

		Expect(modTypeNames(params.QueryMods())).To(Equal([]string{
			"qm.limitQueryMod",
			"qm.orderByQueryMod",
		}))
	})

	It("orders offset, limit and order by", func() {
		params := sqlboiler.Params{
			Offset: 20,
			Limit:  10,
			OrderBy: []sqlboiler.OrderBy{
				{Column: "score", Desc: true},
				{Column: "id", Desc: true},
			},
		}

		Expect(modTypeNames(params.QueryMods())).To(Equal([]string{
			"qm.offsetQueryMod",
			"qm.limitQueryMod",
			"qm.orderByQueryMod",
		}))
	})

	It("skips the order by without terms", func() {
		Expect(modTypeNames(sqlboiler.Params{Offset: 20, Limit: 10}.QueryMods())).To(Equal([]string{
			"qm.offsetQueryMod",
			"qm.limitQueryMod",
		}))
	})

	DescribeTable("OrderByClause",
		func(terms []sqlboiler.OrderBy, clause string) {
			Expect(sqlboiler.OrderByClause(terms)).To(Equal(clause))
		},
		Entry("none", nil, ""),
		Entry("ascending", []sqlboiler.OrderBy{{Column: "title"}}, `"title"`),
		Entry("with tie-breaker", []sqlboiler.OrderBy{
			{Column: "created_at", Desc: true},
			{Column: "id", Desc: true},
		}, `"created_at" DESC, "id" DESC`),
		Entry("qualified column", []sqlboiler.OrderBy{{Column: "submissions.score"}}, `"submissions"."score"`),
	)
})

var _ = Describe("Column resolution", func() {
	DescribeTable("SnakeCaseColumns",
		func(id, column string, ok bool) {
			got, resolved := sqlboiler.SnakeCaseColumns(id)
			Expect(resolved).To(Equal(ok))
			Expect(got).To(Equal(column))
		},
		Entry("camelCase", "createdAt", "created_at", true),
		Entry("camelCase with several words", "lastSubmittedAt", "last_submitted_at", true),
		Entry("single word", "score", "score", true),
		Entry("already snake", "submitted_at", "submitted_at", true),
		Entry("empty", "", "", false),
		Entry("statement", "score; DROP TABLE submissions", "", false),
		Entry("quoted", `score"`, "", false),
		Entry("comment", "score--", "", false),
	)

	It("resolves only mapped identifiers with ColumnMap", func() {
		resolve := sqlboiler.ColumnMap(map[string]string{"score": "submissions.score"})

		column, ok := resolve("score")
		Expect(ok).To(BeTrue())
		Expect(column).To(Equal("submissions.score"))

		_, ok = resolve("title")
		Expect(ok).To(BeFalse())
	})
})
