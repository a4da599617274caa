package tui_test

import (
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/datatable-go"
	"github.com/nrfta/datatable-go/tui"
)

func keyPress(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }
func runes(s string) tea.KeyMsg         { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var _ = Describe("Model", func() {
	var (
		ctrl  *datatable.Controller[task]
		model *tui.Model[task]
	)

	BeforeEach(func() {
		ctrl = startController(25)
		model = tui.New(ctrl, tui.WithTitle("Tasks"))
		DeferCleanup(model.Close)
	})

	press := func(msgs ...tea.KeyMsg) {
		for _, msg := range msgs {
			model.Update(msg)
		}
	}

	Describe("paging keys", func() {
		It("translates next and previous page into 0-based pages", func() {
			press(keyPress(tea.KeyRight))
			Expect(ctrl.Params().Page).To(Equal(1))

			press(runes("l"), keyPress(tea.KeyLeft))
			Expect(ctrl.Params().Page).To(Equal(1))
		})

		It("stops at the first and last page", func() {
			press(keyPress(tea.KeyLeft))
			Expect(ctrl.Params().Page).To(Equal(0))

			press(keyPress(tea.KeyRight), keyPress(tea.KeyRight), keyPress(tea.KeyRight))
			Expect(ctrl.Params().Page).To(Equal(2))
		})

		It("jumps to the last and first page", func() {
			press(keyPress(tea.KeyEnd))
			Expect(ctrl.Params().Page).To(Equal(2))

			press(keyPress(tea.KeyHome))
			Expect(ctrl.Params().Page).To(Equal(0))
		})

		It("cycles rows per page and returns to the first page", func() {
			press(keyPress(tea.KeyRight), runes("+"))

			Expect(ctrl.Params().PerPage).To(Equal(25))
			Expect(ctrl.Params().Page).To(Equal(0))
		})
	})

	Describe("sorting keys", func() {
		It("toggles the active column", func() {
			press(runes("s"))
			Expect(ctrl.Params().OrderBy).To(Equal("title"))
			Expect(ctrl.Params().SortDirection).To(Equal(datatable.Desc))
			Expect(ctrl.State().Data[0].Title).To(Equal("task-25"))
		})

		It("moves between sortable columns only", func() {
			press(keyPress(tea.KeyTab), runes("s"))
			Expect(ctrl.Params().OrderBy).To(Equal("id"))
			Expect(ctrl.Params().SortDirection).To(Equal(datatable.Asc))

			press(keyPress(tea.KeyShiftTab), keyPress(tea.KeyShiftTab), keyPress(tea.KeyEnter))
			Expect(ctrl.Params().OrderBy).To(Equal("id"))
			Expect(ctrl.Params().SortDirection).To(Equal(datatable.Desc))
		})
	})

	It("quits on q", func() {
		_, cmd := model.Update(runes("q"))
		Expect(cmd).ToNot(BeNil())
		Expect(cmd()).To(Equal(tea.Quit()))
	})

	It("wakes the program when the controller publishes", func() {
		cmd := model.Init()
		ctrl.SetPage(1)

		Expect(cmd()).To(Equal(tui.StateChangedMsg{}))

		_, next := model.Update(tui.StateChangedMsg{})
		Expect(next).ToNot(BeNil())
	})

	Describe("View", func() {
		It("renders the title, rows and footer", func() {
			view := model.View()

			Expect(view).To(ContainSubstring("Tasks"))
			Expect(view).To(ContainSubstring("Title ▲"))
			Expect(view).To(ContainSubstring("task-01"))
			Expect(view).To(ContainSubstring("task-10"))
			Expect(view).ToNot(ContainSubstring("task-11"))
			Expect(view).To(ContainSubstring("1-10 of 25"))
		})

		It("renders the last page with the corrected range", func() {
			press(keyPress(tea.KeyEnd))

			view := model.View()
			Expect(view).To(ContainSubstring("21-25 of 25"))
			Expect(view).To(ContainSubstring("page 3/3"))
		})
	})
})

var _ = Describe("RenderTable", func() {
	It("pads partially filled pages and shows the loading line", func() {
		s := datatable.NewState[task](10, []int{10}, datatable.Asc, "id")
		s = datatable.Reduce(s, datatable.SetAll[task]{Partial: datatable.Partial[task]{
			Data:  datatable.Ptr(tasks(2)),
			Total: datatable.Ptr(2),
		}})

		full := tui.RenderTable(tui.TableView[task]{Columns: taskColumns(), State: s})
		loading := tui.RenderTable(tui.TableView[task]{Columns: taskColumns(), State: s, Loading: true})

		Expect(full).To(ContainSubstring("ID ▲"))
		Expect(full).To(ContainSubstring("1-2 of 2"))
		Expect(full).ToNot(ContainSubstring("Loading"))
		Expect(loading).To(ContainSubstring("Loading..."))
	})

	It("renders the footer of an empty table", func() {
		s := datatable.NewState[task](10, []int{10}, datatable.Asc, "")
		Expect(tui.Footer(datatable.NewPagination(s))).To(Equal("0-0 of 0 · page 1/1 · 10 per page"))
	})
})
