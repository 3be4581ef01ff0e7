package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Sean-Lang1/MarchingBandDB/internal/model"
	"github.com/Sean-Lang1/MarchingBandDB/internal/store"
)

// console is the menu-driven presentation layer. It owns all prompting and
// re-prompting; only validated primitives reach the store, and store
// failures are reported once, never retried here. When input is exhausted
// the session ends as if the user chose Exit; an aborted form writes
// nothing.
type console struct {
	db  *sql.DB
	in  *bufio.Scanner
	out io.Writer
	eof bool
}

func newConsole(db *sql.DB, in io.Reader, out io.Writer) *console {
	return &console{db: db, in: bufio.NewScanner(in), out: out}
}

func (c *console) run(ctx context.Context) {
	for {
		fmt.Fprint(c.out, `
========================================
         THE MARCHING DATABASE
========================================
[1] Students
[2] Instruments
[3] Uniforms
[4] Shakos
[5] Compliance Reports
[6] Exit
`)
		choice := c.readIntInRange("\nChoice: ", 1, 6)
		if c.eof {
			return
		}
		switch choice {
		case 1:
			c.studentsMenu(ctx)
		case 2:
			c.instrumentsMenu(ctx)
		case 3:
			c.uniformsMenu(ctx)
		case 4:
			c.shakosMenu(ctx)
		case 5:
			c.complianceMenu(ctx)
		case 6:
			fmt.Fprintln(c.out, "Goodbye!")
			return
		}
		if c.eof {
			return
		}
	}
}

// ---------- input helpers ----------

// readLine returns the next trimmed input line. Once the scanner is
// exhausted it sets eof and returns ""; every prompt loop below bails on
// eof instead of re-prompting, so a closed stdin unwinds the whole menu
// tree.
func (c *console) readLine(prompt string) string {
	if c.eof {
		return ""
	}
	fmt.Fprint(c.out, prompt)
	if !c.in.Scan() {
		c.eof = true
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) readInt(prompt string) int64 {
	for {
		n, err := strconv.ParseInt(c.readLine(prompt), 10, 64)
		if err == nil {
			return n
		}
		if c.eof {
			return 0
		}
		fmt.Fprintln(c.out, "Enter a number.")
	}
}

func (c *console) readIntInRange(prompt string, lo, hi int64) int64 {
	for {
		n := c.readInt(prompt)
		if c.eof || (n >= lo && n <= hi) {
			return n
		}
		fmt.Fprintf(c.out, "Enter %d-%d.\n", lo, hi)
	}
}

func (c *console) readFloatInRange(prompt string, lo, hi float64) float64 {
	for {
		x, err := strconv.ParseFloat(c.readLine(prompt), 64)
		if err == nil && x >= lo && x <= hi {
			return x
		}
		if c.eof {
			return 0
		}
		fmt.Fprintf(c.out, "Enter %.2f-%.2f.\n", lo, hi)
	}
}

func (c *console) readBool(prompt string) bool {
	return c.readIntInRange(prompt, 0, 1) == 1
}

func (c *console) readSection(prompt string) string {
	for {
		s := strings.ToUpper(c.readLine(prompt))
		if model.ValidSection(s) {
			return s
		}
		if c.eof {
			return ""
		}
		fmt.Fprintf(c.out, "Invalid selection. Sections: %s.\n", strings.Join(model.Sections, ", "))
	}
}

// report prints a store failure in user terms.
func (c *console) report(err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fmt.Fprintln(c.out, "No such record.")
	case errors.Is(err, store.ErrDuplicateID):
		fmt.Fprintln(c.out, "A student with that ID already exists.")
	case errors.Is(err, store.ErrUnknownStudent):
		fmt.Fprintln(c.out, "This student ID doesn't exist. Please add the student first.")
	case errors.Is(err, store.ErrUnknownType):
		fmt.Fprintln(c.out, "No instrument type with that ID.")
	case errors.Is(err, store.ErrAlreadyCheckedOut):
		fmt.Fprintln(c.out, "That item is already checked out.")
	case errors.Is(err, store.ErrAlreadyHolding):
		fmt.Fprintln(c.out, "A student can only hold ONE item from this inventory at a time.")
	case errors.Is(err, store.ErrDuplicateSerial):
		fmt.Fprintln(c.out, "An instrument with that serial already exists.")
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

func yesNo(b bool) string {
	if b {
		return "YES"
	}
	return "NO"
}

func holderID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}

// ---------- students ----------

func (c *console) studentsMenu(ctx context.Context) {
	for {
		fmt.Fprint(c.out, `
----------- STUDENTS -----------
[1] Add student
[2] View all students
[3] Find student by ID
[4] Assign section leader
[5] View section leaders
[6] Back
`)
		switch c.readIntInRange("Choice: ", 1, 6) {
		case 1:
			c.addStudent(ctx)
		case 2:
			c.viewAllStudents(ctx)
		case 3:
			c.findStudent(ctx)
		case 4:
			c.setSectionLeader(ctx)
		case 5:
			c.viewSectionLeaders(ctx)
		case 6:
			return
		}
		if c.eof {
			return
		}
	}
}

func (c *console) addStudent(ctx context.Context) {
	id := c.readInt("\nStudent ID (number): ")
	first := c.readLine("First name: ")
	last := c.readLine("Last name: ")
	classification := c.readLine("Class (Freshman/Sophomore/Junior/Senior): ")
	section := c.readSection("Section (WOODWIND/BRASS/PERCUSSION/AUXILIARY/DM): ")
	shirt := c.readLine("Shirt size (optional, XS/S/M/L/XL/XXL): ")
	shoe := c.readLine("Shoe size (optional, numeric): ")
	if c.eof {
		return
	}

	if err := store.RegisterStudent(ctx, c.db, id, first, last, classification, section, shirt, shoe); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Student added.")
}

func (c *console) viewAllStudents(ctx context.Context) {
	students, err := store.ListStudents(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tNAME\tCLASS\tSECTION\tSHIRT\tSHOE\tHRS\tGPA\tDUES\tELIG")
	for _, s := range students {
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%s\t%s\t%d\t%.2f\t%s\t%s\n",
			s.ID, s.FirstName, s.LastName, s.Classification, s.Section,
			s.ShirtSize, s.ShoeSize, s.CreditHours, s.GPA,
			yesNo(s.DuesPaid), yesNo(s.Eligible))
	}
	w.Flush()
}

func (c *console) findStudent(ctx context.Context) {
	id := c.readInt("\nStudent ID: ")
	if c.eof {
		return
	}
	p, err := store.GetStudentProfile(ctx, c.db, id)
	if err != nil {
		c.report(err)
		return
	}
	if p == nil {
		fmt.Fprintln(c.out, "No student found with that ID.")
		return
	}

	fmt.Fprintf(c.out, `
--- STUDENT PROFILE ---
ID: %d
Name: %s %s
Class: %s
Section: %s
Shirt Size: %s
Shoe Size: %s
Credit Hours: %d
GPA: %.2f
Dues Paid: %s
Eligible to march: %s
Last Verified: %s
`, p.ID, p.FirstName, p.LastName, p.Classification, p.Section,
		p.ShirtSize, p.ShoeSize, p.CreditHours, p.GPA,
		yesNo(p.DuesPaid), yesNo(p.Eligible), p.LastVerified)
}

func (c *console) setSectionLeader(ctx context.Context) {
	section := c.readSection("\nSection (WOODWIND/BRASS/PERCUSSION/AUXILIARY/DM): ")
	leaderID := c.readInt("Leader student ID: ")
	if c.eof {
		return
	}

	if err := store.SetSectionLeader(ctx, c.db, section, leaderID); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Section leader saved.")
}

func (c *console) viewSectionLeaders(ctx context.Context) {
	leaders, err := store.ListSectionLeaders(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}
	if len(leaders) == 0 {
		fmt.Fprintln(c.out, "No section leaders assigned.")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSECTION\tLEADER ID\tNAME")
	for _, l := range leaders {
		fmt.Fprintf(w, "%s\t%d\t%s\n", l.Section, l.LeaderID, l.LeaderName)
	}
	w.Flush()
}

// ---------- instruments ----------

func (c *console) instrumentsMenu(ctx context.Context) {
	for {
		fmt.Fprint(c.out, `
---------- INSTRUMENTS ----------
[1] Check out instrument
[2] Return instrument
[3] View instrument assignments
[4] Add instrument to inventory
[5] Back
`)
		switch c.readIntInRange("Choice: ", 1, 5) {
		case 1:
			c.checkoutInstrument(ctx)
		case 2:
			c.returnInstrument(ctx)
		case 3:
			c.viewInstrumentAssignments(ctx)
		case 4:
			c.addInstrument(ctx)
		case 5:
			return
		}
		if c.eof {
			return
		}
	}
}

func (c *console) addInstrument(ctx context.Context) {
	types, err := store.ListInstrumentTypes(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}

	fmt.Fprintln(c.out, "\nInstrument Types:")
	for _, t := range types {
		fmt.Fprintf(c.out, "%d. %s (%s)\n", t.ID, t.Name, t.Section)
	}

	typeID := c.readInt("\nChoose type ID: ")
	serial := c.readLine("Serial (optional): ")
	notes := c.readLine("Condition notes (optional): ")
	if c.eof {
		return
	}

	if _, err := store.AddInstrument(ctx, c.db, typeID, serial, notes); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Instrument added to inventory.")
}

func (c *console) checkoutInstrument(ctx context.Context) {
	studentID := c.readInt("\nStudent ID: ")
	if c.eof {
		return
	}
	section, err := store.StudentSection(ctx, c.db, studentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintln(c.out, "This student ID doesn't exist. Please add the student first.")
		} else {
			c.report(err)
		}
		return
	}

	fmt.Fprintf(c.out, "\nFilter available instruments by student's section (%s)?\n", section)
	if c.readIntInRange("[1] Yes  [2] No\nChoice: ", 1, 2) == 2 {
		section = ""
	}

	available, err := store.ListAvailableInstruments(ctx, c.db, section)
	if err != nil {
		c.report(err)
		return
	}
	if len(available) == 0 {
		fmt.Fprintln(c.out, "No instruments available for that view.")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tTYPE\tSERIAL\tCONDITION NOTES")
	for _, i := range available {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i.ID, i.TypeName, i.Serial, i.ConditionNotes)
	}
	w.Flush()

	instrumentID := c.readInt("\nEnter instrument ID to check out: ")
	if c.eof {
		return
	}
	if err := store.CheckoutInstrument(ctx, c.db, instrumentID, studentID); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Instrument checked out.")
}

func (c *console) returnInstrument(ctx context.Context) {
	out, err := store.ListCheckedOutInstruments(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}
	if len(out) == 0 {
		fmt.Fprintln(c.out, "None.")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tTYPE\tSERIAL\tSTUDENT\tDATE")
	for _, i := range out {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i.ID, i.TypeName, i.Serial, holderID(i.CheckedOutTo), i.CheckedOutDate)
	}
	w.Flush()

	id := c.readInt("\nEnter instrument ID to return: ")
	if c.eof {
		return
	}
	if err := store.ReturnInstrument(ctx, c.db, id); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Instrument returned.")
}

func (c *console) viewInstrumentAssignments(ctx context.Context) {
	all, err := store.ListInstrumentAssignments(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tTYPE\tSERIAL\tSTUDENT\tNAME\tDATE\tCONDITION NOTES")
	for _, i := range all {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			i.ID, i.TypeName, i.Serial, holderID(i.CheckedOutTo), i.HolderName, i.CheckedOutDate, i.ConditionNotes)
	}
	w.Flush()
}

// ---------- uniforms ----------

func (c *console) uniformsMenu(ctx context.Context) {
	for {
		fmt.Fprint(c.out, `
----------- UNIFORMS -----------
[1] Check out uniform
[2] Return uniform
[3] View uniform assignments
[4] Back
`)
		switch c.readIntInRange("Choice: ", 1, 4) {
		case 1:
			c.checkoutUniform(ctx)
		case 2:
			c.returnUniform(ctx)
		case 3:
			c.viewUniformAssignments(ctx)
		case 4:
			return
		}
		if c.eof {
			return
		}
	}
}

func (c *console) checkoutUniform(ctx context.Context) {
	studentID := c.readInt("\nStudent ID: ")
	if c.eof {
		return
	}

	// Returned stock first; issuing new is the fallback.
	available, err := store.ListAvailableUniforms(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}
	if len(available) > 0 {
		w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\nReturned uniforms in stock:")
		fmt.Fprintln(w, "ID\tCOAT\tPANT\tC#\tP#\tCONDITION NOTES")
		for _, u := range available {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				u.ID, u.CoatSize, u.PantSize, u.CoatNumber, u.PantNumber, u.ConditionNotes)
		}
		w.Flush()

		id := c.readInt("\nEnter uniform ID to re-issue, or 0 to issue new: ")
		if c.eof {
			return
		}
		if id != 0 {
			if err := store.ReissueUniform(ctx, c.db, id, studentID); err != nil {
				c.report(err)
				return
			}
			fmt.Fprintln(c.out, "Uniform checked out.")
			return
		}
	}

	coatSize := c.readLine("Coat size (optional): ")
	pantSize := c.readLine("Pant size (optional): ")
	coatNumber := c.readLine("Coat number (optional): ")
	pantNumber := c.readLine("Pant number (optional): ")
	notes := c.readLine("Condition notes (optional): ")
	if c.eof {
		return
	}

	if _, err := store.CheckoutUniform(ctx, c.db, studentID, coatSize, pantSize, coatNumber, pantNumber, notes); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Uniform checked out.")
}

func (c *console) returnUniform(ctx context.Context) {
	out, err := store.ListCheckedOutUniforms(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}
	if len(out) == 0 {
		fmt.Fprintln(c.out, "None.")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tCOAT\tPANT\tC#\tP#\tSTUDENT\tDATE")
	for _, u := range out {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.CoatSize, u.PantSize, u.CoatNumber, u.PantNumber, holderID(u.CheckedOutTo), u.CheckedOutDate)
	}
	w.Flush()

	id := c.readInt("\nEnter uniform ID to return: ")
	if c.eof {
		return
	}
	if err := store.ReturnUniform(ctx, c.db, id); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Uniform returned.")
}

func (c *console) viewUniformAssignments(ctx context.Context) {
	all, err := store.ListUniformAssignments(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tCOAT\tPANT\tC#\tP#\tSTUDENT\tNAME\tDATE\tCONDITION NOTES")
	for _, u := range all {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			u.ID, u.CoatSize, u.PantSize, u.CoatNumber, u.PantNumber,
			holderID(u.CheckedOutTo), u.HolderName, u.CheckedOutDate, u.ConditionNotes)
	}
	w.Flush()
}

// ---------- shakos ----------

func (c *console) shakosMenu(ctx context.Context) {
	for {
		fmt.Fprint(c.out, `
------------ SHAKOS ------------
[1] Check out shako
[2] Return shako
[3] View shako assignments
[4] Back
`)
		switch c.readIntInRange("Choice: ", 1, 4) {
		case 1:
			c.checkoutShako(ctx)
		case 2:
			c.returnShako(ctx)
		case 3:
			c.viewShakoAssignments(ctx)
		case 4:
			return
		}
		if c.eof {
			return
		}
	}
}

func (c *console) checkoutShako(ctx context.Context) {
	studentID := c.readInt("\nStudent ID: ")
	if c.eof {
		return
	}

	available, err := store.ListAvailableShakos(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}
	if len(available) > 0 {
		w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "\nReturned shakos in stock:")
		fmt.Fprintln(w, "ID\tSIZE\tCONDITION NOTES")
		for _, sh := range available {
			fmt.Fprintf(w, "%d\t%s\t%s\n", sh.ID, sh.Size, sh.ConditionNotes)
		}
		w.Flush()

		id := c.readInt("\nEnter shako ID to re-issue, or 0 to issue new: ")
		if c.eof {
			return
		}
		if id != 0 {
			if err := store.ReissueShako(ctx, c.db, id, studentID); err != nil {
				c.report(err)
				return
			}
			fmt.Fprintln(c.out, "Shako checked out.")
			return
		}
	}

	size := c.readLine("Shako size (optional): ")
	notes := c.readLine("Condition notes (optional): ")
	if c.eof {
		return
	}

	if _, err := store.CheckoutShako(ctx, c.db, studentID, size, notes); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Shako checked out.")
}

func (c *console) returnShako(ctx context.Context) {
	out, err := store.ListCheckedOutShakos(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}
	if len(out) == 0 {
		fmt.Fprintln(c.out, "None.")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tSIZE\tSTUDENT\tDATE\tCONDITION NOTES")
	for _, sh := range out {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			sh.ID, sh.Size, holderID(sh.CheckedOutTo), sh.CheckedOutDate, sh.ConditionNotes)
	}
	w.Flush()

	id := c.readInt("\nEnter shako ID to return: ")
	if c.eof {
		return
	}
	if err := store.ReturnShako(ctx, c.db, id); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Shako returned.")
}

func (c *console) viewShakoAssignments(ctx context.Context) {
	all, err := store.ListShakoAssignments(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nID\tSIZE\tSTUDENT\tNAME\tDATE\tCONDITION NOTES")
	for _, sh := range all {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			sh.ID, sh.Size, holderID(sh.CheckedOutTo), sh.HolderName, sh.CheckedOutDate, sh.ConditionNotes)
	}
	w.Flush()
}

// ---------- compliance ----------

func (c *console) complianceMenu(ctx context.Context) {
	for {
		fmt.Fprint(c.out, `
------ COMPLIANCE REPORTS ------
[1] Show eligibility report
[2] Update student compliance
[3] Back
`)
		switch c.readIntInRange("Choice: ", 1, 3) {
		case 1:
			c.showEligibilityReport(ctx)
		case 2:
			c.updateCompliance(ctx)
		case 3:
			return
		}
		if c.eof {
			return
		}
	}
}

func (c *console) updateCompliance(ctx context.Context) {
	id := c.readInt("\nStudent ID: ")
	hours := c.readIntInRange("Credit hours (0-30): ", 0, 30)
	gpa := c.readFloatInRange("GPA (0.00-4.00): ", 0.0, 4.0)
	dues := c.readBool("Dues paid? (1=yes, 0=no): ")
	if c.eof {
		return
	}

	if err := store.UpsertCompliance(ctx, c.db, id, int(hours), gpa, dues); err != nil {
		c.report(err)
		return
	}
	fmt.Fprintln(c.out, "Compliance saved.")
}

func (c *console) showEligibilityReport(ctx context.Context) {
	report, err := store.EligibilityReport(ctx, c.db)
	if err != nil {
		c.report(err)
		return
	}

	fmt.Fprintf(c.out, "\nELIGIBILITY REPORT (needs: >=%d hrs, >=%.1f GPA, dues paid)\n",
		model.MinCreditHours, model.MinGPA)

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCLASS\tSECTION\tHRS\tGPA\tDUES\tOK_H\tOK_G\tOK_D\tELIG\tVERIFIED")
	for _, r := range report {
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%s\t%d\t%.2f\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.FirstName, r.LastName, r.Classification, r.Section,
			r.CreditHours, r.GPA, yesNo(r.DuesPaid),
			yesNo(r.OKHours), yesNo(r.OKGPA), yesNo(r.OKDues), yesNo(r.Eligible),
			r.LastVerified)
	}
	w.Flush()
}
