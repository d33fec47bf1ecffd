package session

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/uninurse/uninurse/internal/domain/book"
	"github.com/uninurse/uninurse/internal/domain/patient"
)

// Render writes the displayed list as a table. In the task views each
// patient's tasks follow its row; the patient of interest, if any, is
// printed in full at the end.
func Render(w io.Writer, snap Snapshot) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tNAME\tPHONE\tEMAIL\tTAGS")
	for i, p := range snap.Patients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", i+1, p.Name, p.Phone, p.Email, tagList(p))
		if snap.View != book.ViewPatients {
			for j, t := range p.Tasks().Items() {
				fmt.Fprintf(tw, "\t  %d. %s\t\t\t\n", j+1, t)
			}
		}
	}
	if len(snap.Patients) == 0 {
		fmt.Fprintln(tw, "-\t(no patients)\t\t\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if snap.Focus != nil {
		if _, err := io.WriteString(w, "\n"+describe(*snap.Focus)); err != nil {
			return err
		}
	}
	return nil
}

func tagList(p patient.Patient) string {
	tags := p.Tags().Items()
	names := make([]string, len(tags))
	for i, t := range tags {
		names[i] = t.Name
	}
	return strings.Join(names, ", ")
}

func describe(p patient.Patient) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n  Phone: %s\n  Email: %s\n  Address: %s\n", p.Name, p.Phone, p.Email, p.Address)
	section := func(title string, empty bool, listing string) {
		if empty {
			return
		}
		fmt.Fprintf(&b, "  %s:\n", title)
		for _, line := range strings.Split(listing, "\n") {
			fmt.Fprintf(&b, "    %s\n", line)
		}
	}
	section("Tasks", p.Tasks().IsEmpty(), p.Tasks().String())
	section("Conditions", p.Conditions().IsEmpty(), p.Conditions().String())
	section("Medications", p.Medications().IsEmpty(), p.Medications().String())
	section("Remarks", p.Remarks().IsEmpty(), p.Remarks().String())
	return b.String()
}
