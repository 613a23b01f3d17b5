package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/jakechorley/gramconnect/pkg/core/model"
	"github.com/jakechorley/gramconnect/pkg/core/views"
)

// Renderer draws dashboards as text
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Render(dash views.Dashboard) {
	switch d := dash.(type) {
	case views.FarmerDashboard:
		r.renderFarmer(d)
	case views.WorkerDashboard:
		r.renderWorker(d)
	}
}

func (r *Renderer) renderFarmer(d views.FarmerDashboard) {
	fmt.Fprintf(r.out, "\n%s%s%s\n\n", colorBold, d.Greeting(), colorReset)

	fmt.Fprintf(r.out, "  Active Jobs:         %d\n", d.Stats.ActiveJobs)
	fmt.Fprintf(r.out, "  Total Applications:  %d\n", d.Stats.TotalApplications)
	fmt.Fprintf(r.out, "  Pending Approvals:   %d\n\n", d.Stats.PendingApprovals)

	fmt.Fprintf(r.out, "%sMy Jobs%s\n", colorBold, colorReset)
	if d.Empty {
		fmt.Fprintf(r.out, "  %sNo jobs posted yet. Use postJob to add one.%s\n\n", colorDim, colorReset)
	} else {
		titleWidth := columnWidth(20, len(d.Jobs), func(i int) string { return d.Jobs[i].Job.Title })
		for _, j := range d.Jobs {
			fmt.Fprintf(r.out, "  %-*s %-14s %s/day  %s  %s%d applications (%d pending)%s\n",
				titleWidth, j.Job.Title,
				j.Job.TimeSlot,
				formatRupees(j.Job.PayRate),
				j.Job.Duration,
				colorBlue, j.ApplicationCount, j.PendingCount, colorReset,
			)
			fmt.Fprintf(r.out, "  %s%s%s\n", colorDim, j.Job.ID, colorReset)
		}
		fmt.Fprintln(r.out)
	}

	fmt.Fprintf(r.out, "%sApplications%s\n", colorBold, colorReset)
	if len(d.Applications) == 0 {
		fmt.Fprintf(r.out, "  %sNo applications%s\n\n", colorDim, colorReset)
		return
	}

	nameWidth := columnWidth(16, len(d.Applications), func(i int) string { return d.Applications[i].Application.WorkerName })
	for _, row := range d.Applications {
		app := row.Application
		fmt.Fprintf(r.out, "  %-*s %-20s %-20s %s%-9s%s",
			nameWidth, app.WorkerName,
			app.WorkerLocation,
			app.JobTitle,
			statusColor(app.Status), row.Badge, colorReset,
		)
		if len(row.Actions) > 0 {
			actions := make([]string, len(row.Actions))
			for i, a := range row.Actions {
				actions[i] = fmt.Sprintf("%s %s", a, app.ID)
			}
			fmt.Fprintf(r.out, "  %s[%s]%s", colorDim, strings.Join(actions, " | "), colorReset)
		}
		fmt.Fprintln(r.out)
	}
	fmt.Fprintln(r.out)
}

func (r *Renderer) renderWorker(d views.WorkerDashboard) {
	fmt.Fprintf(r.out, "\n%s%s%s\n\n", colorBold, d.Greeting(), colorReset)

	fmt.Fprintf(r.out, "  Jobs Applied:    %d\n", d.Stats.Applied)
	fmt.Fprintf(r.out, "  Approved:        %d\n", d.Stats.Approved)
	fmt.Fprintf(r.out, "  Available Jobs:  %d\n\n", d.Stats.Available)

	fmt.Fprintf(r.out, "%sAvailable Jobs%s\n", colorBold, colorReset)
	if len(d.Available) == 0 {
		fmt.Fprintf(r.out, "  %sNo jobs available%s\n\n", colorDim, colorReset)
		return
	}

	for _, card := range d.Available {
		job := card.Job
		fmt.Fprintf(r.out, "  %s%s%s\n", colorBold, job.Title, colorReset)
		fmt.Fprintf(r.out, "    %s\n", card.Preview)
		fmt.Fprintf(r.out, "    %s | %s | %s/day\n", job.FarmerName, job.Location, formatRupees(job.PayRate))
		fmt.Fprintf(r.out, "    %sapply %s%s\n\n", colorDim, job.ID, colorReset)
	}
}

func statusColor(status model.ApplicationStatus) string {
	switch status {
	case model.StatusApproved:
		return colorGreen
	case model.StatusRejected:
		return colorRed
	default:
		return colorYellow
	}
}

func formatRupees(amount int) string {
	return fmt.Sprintf("₹%d", amount)
}

// columnWidth returns the widest of n values, never less than minWidth
func columnWidth(minWidth, n int, value func(int) string) int {
	width := minWidth
	for i := range n {
		if l := len([]rune(value(i))); l > width {
			width = l
		}
	}
	return width
}
