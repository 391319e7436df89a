package session

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/reap-dev/git-reap/internal/types"
)

// timestampLayout matches the git iso8601 form the commit dates arrive in.
const timestampLayout = "2006-01-02 15:04:05 -0700"

var (
	headingStyle  = lipgloss.NewStyle().Bold(true)
	reservedStyle = lipgloss.NewStyle().Faint(true)
	skipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	deleteStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("78"))
	warnStyle     = lipgloss.NewStyle().
			Foreground(lipgloss.Color("202")).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("202")).
			Padding(0, 1)
)

// Reporter writes the line-oriented status output of a run.
type Reporter struct {
	out            io.Writer
	distinctDryRun bool
}

// NewReporter builds a reporter writing to out. distinctDryRun switches the
// dry-run deletion line from "is deleted" to "would be deleted".
func NewReporter(out io.Writer, distinctDryRun bool) *Reporter {
	return &Reporter{out: out, distinctDryRun: distinctDryRun}
}

// Start announces the run.
func (r *Reporter) Start(params types.Params) {
	_, _ = fmt.Fprintln(r.out, headingStyle.Render(fmt.Sprintf(
		"Sweeping %s branches with no commits in the last %d days...", params.Mode, params.AgeDays)))
}

// Done announces normal completion.
func (r *Reporter) Done() {
	_, _ = fmt.Fprintln(r.out, headingStyle.Render("Done."))
}

// Warn renders a warning block.
func (r *Reporter) Warn(message string) {
	_, _ = fmt.Fprintln(r.out, warnStyle.Render(message))
}

// Outcome prints one per-branch status line. By default a dry-run deletion
// reads exactly like a real one; that is the historical wording, opt out
// via distinct_dry_run.
func (r *Reporter) Outcome(branch types.BranchRef, outcome types.Outcome, params types.Params) {
	switch outcome.Kind {
	case types.OutcomeReserved:
		_, _ = fmt.Fprintln(r.out, reservedStyle.Render(fmt.Sprintf(
			"%s is reserved", branch.Qualified)))
	case types.OutcomeCurrent:
		_, _ = fmt.Fprintln(r.out, skipStyle.Render(fmt.Sprintf(
			"%s is skipped (current branch)", branch.Qualified)))
	case types.OutcomeSkipped:
		_, _ = fmt.Fprintln(r.out, skipStyle.Render(fmt.Sprintf(
			"%s is skipped (last commit at: %s)",
			branch.Qualified, outcome.LastCommit.Format(timestampLayout))))
	case types.OutcomeDeleted:
		verb := "is"
		if params.DryRun && r.distinctDryRun {
			verb = "would be"
		}
		_, _ = fmt.Fprintln(r.out, deleteStyle.Render(fmt.Sprintf(
			"%s %s deleted (last commit at: %s)",
			branch.Qualified, verb, outcome.LastCommit.Format(timestampLayout))))
	}
}
