package datatable_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/datatable-go"
)

var _ = Describe("Pagination helpers", func() {
	It("counts pages", func() {
		Expect(datatable.PageCount(0, 10)).To(Equal(0))
		Expect(datatable.PageCount(5, 10)).To(Equal(1))
		Expect(datatable.PageCount(10, 10)).To(Equal(1))
		Expect(datatable.PageCount(11, 10)).To(Equal(2))
		Expect(datatable.PageCount(11, 0)).To(Equal(0))
	})

	It("corrects a page beyond the last page to 0", func() {
		Expect(datatable.SafePage(3, 10, 5)).To(Equal(0))
		Expect(datatable.SafePage(1, 10, 20)).To(Equal(1))
		Expect(datatable.SafePage(2, 10, 20)).To(Equal(0))
	})

	It("pads partially filled pages", func() {
		Expect(datatable.EmptyRows(0, 10, 5)).To(Equal(5))
		Expect(datatable.EmptyRows(1, 10, 15)).To(Equal(5))
		Expect(datatable.EmptyRows(0, 10, 30)).To(Equal(0))
	})

	It("translates between display and internal page numbers", func() {
		Expect(datatable.PageFromDisplay(3)).To(Equal(2))
		Expect(datatable.DisplayPage(2)).To(Equal(3))
	})

	Describe("NewPagination", func() {
		It("renders page 0 without mutating the stored page", func() {
			s := datatable.NewState[row](10, []int{10}, datatable.Asc, "")
			s = datatable.Reduce(s, datatable.SetAll[row]{Partial: datatable.Partial[row]{
				Page:  datatable.Ptr(3),
				Total: datatable.Ptr(5),
			}})

			p := datatable.NewPagination(s)
			Expect(p.Page).To(Equal(0))
			Expect(p.StoredPage).To(Equal(3))
			Expect(s.Page).To(Equal(3))
			Expect(p.EmptyRows).To(Equal(5))
			Expect(p.From).To(Equal(1))
			Expect(p.To).To(Equal(5))
		})

		It("reports neighbours and row range", func() {
			s := datatable.NewState[row](10, []int{10}, datatable.Asc, "")
			s = datatable.Reduce(s, datatable.SetAll[row]{Partial: datatable.Partial[row]{
				Page:  datatable.Ptr(1),
				Total: datatable.Ptr(45),
			}})

			p := datatable.NewPagination(s)
			Expect(p.PageCount).To(Equal(5))
			Expect(p.HasPreviousPage).To(BeTrue())
			Expect(p.HasNextPage).To(BeTrue())
			Expect(p.From).To(Equal(11))
			Expect(p.To).To(Equal(20))
		})

		It("is empty for an empty table", func() {
			s := datatable.NewState[row](10, []int{10}, datatable.Asc, "")
			p := datatable.NewPagination(s)

			Expect(p.PageCount).To(Equal(0))
			Expect(p.HasNextPage).To(BeFalse())
			Expect(p.From).To(BeZero())
			Expect(p.To).To(BeZero())
		})
	})
})
