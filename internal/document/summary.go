package document

import (
	"fmt"
	"strings"
	"time"

	"github.com/mmynk/wispgen/internal/models"
)

func summary(b *builder, a answers, wisp *models.Wisp, at time.Time) {
	created := wisp.CreatedAt
	if created.IsZero() {
		created = at
	}
	updated := wisp.UpdatedAt
	if updated.IsZero() {
		updated = created
	}

	b.title("Written Information Security Plan")
	b.centered(a.company())
	b.centered(fmt.Sprintf("Created: %s | Last Updated: %s", longDate(created), longDate(updated)))
	b.spacer()

	b.heading("Executive Summary")
	b.para(fmt.Sprintf("This Written Information Security Plan (WISP) has been developed by %s "+
		"to comply with the requirements set forth in IRS Publication 4557 and the Gramm-Leach-Bliley Act (GLBA). "+
		"This plan outlines our commitment to protecting customer information and the specific measures we have "+
		"implemented to safeguard sensitive data.", a.or("company_name", "the Company")))
	b.para(fmt.Sprintf("As a %s organization with %s, we handle %s and are committed to maintaining "+
		"the highest standards of data protection and privacy.",
		strings.ToLower(a.or("industry", "business")),
		a.or("company_size", "multiple")+" employees",
		strings.ToLower(a.label("personal_info_types"))))

	b.heading("Company Information")
	b.subheading("Business Details")
	b.field("Company Name:", a.or("company_name", "N/A"))
	b.field("Industry:", a.label("industry"))
	b.field("Company Size:", a.label("company_size"))
	b.field("Contact Email:", a.or("contact_email", "N/A"))
	b.field("Business Address:", "")
	address := addressLines(answers{Answers: withoutEmail(a.Answers)})
	if len(address) == 0 {
		address = []string{"Address not provided"}
	}
	for _, line := range address {
		b.item(1, line)
	}
	b.spacer()

	b.heading("Administrative Safeguards")
	narratives(b, a, administrativeSafeguards[:3])
	b.field("Background Checks:", pick(a.Bool("background_checks"), "Conducted for data access roles", "Not conducted"))
	b.field("Training Frequency:", a.label("training_frequency"))

	b.heading("Technical Safeguards")
	b.subheading("Authentication and Access Security")
	b.field("Multi-Factor Authentication:", pick(a.Bool("mfa_enabled"), "Enabled", "Not Enabled"))
	b.field("Password Policy:", pick(a.Bool("complex_passwords_required"), "Written policy in place", "No written policy"))
	b.subheading("Data Encryption")
	b.field("Encryption at Rest:", pick(a.Bool("encryption_at_rest"), "Implemented", "Not Implemented"))
	b.field("Encryption in Transit:", pick(a.Bool("encryption_in_transit"), "Implemented", "Not Implemented"))
	b.subheading("Network and System Protection")
	b.field("Firewall Protection:", pick(a.Bool("firewall_protection"), "Active", "Not Active"))
	b.field("Antivirus Software:", pick(a.String("antivirus_solution") != "", "Installed and updated", "Not installed"))
	b.field("Security Updates:", pick(a.Bool("windows_patch_mgmt"), "Regular updates applied", "Not regularly applied"))
	b.subheading("Data Backup and Recovery")
	backups := a.String("backup_solution") != ""
	b.field("Regular Data Backups:", pick(backups, "Implemented", "Not Implemented"))
	b.para(pick(backups,
		"Regular backups ensure business continuity and data availability in the event of system failures or security incidents.",
		"Data backup procedures should be implemented for business continuity."))

	b.heading("Physical Safeguards")
	b.para(physicalIntro)
	b.subheading("Physical Security Measures")
	b.bullets(physicalMeasures...)

	b.heading("Information Collected and Stored")
	b.subheading("Data Types")
	b.field("Personal Information Types:", a.label("personal_info_types"))
	b.field("Data Retention Period:", a.label("data_retention"))
	if v := a.String("data_sources"); v != "" {
		b.field("Data Collection Sources:", "")
		for _, line := range lines(v) {
			b.item(1, line)
		}
	}
	narratives(b, a, physicalSafeguards[2:])

	b.heading("Systems and Software")
	b.subheading("Business Systems in Use")
	var inUse []string
	for _, s := range businessSystems {
		if a.Bool(s.Field) {
			inUse = append(inUse, s.Name)
		}
	}
	if len(inUse) == 0 {
		b.para("No standard business systems specified")
	}
	b.bullets(inUse...)
	if v := a.String("custom_software"); v != "" {
		b.field("Additional Systems:", "")
		for _, line := range lines(v) {
			b.item(1, line)
		}
	}

	b.heading("Third-Party Vendors and Service Providers")
	if v := a.String("vendor_list"); v != "" {
		b.subheading("Vendors with Data Access")
		for _, line := range lines(v) {
			b.para(line)
		}
	}
	b.subheading("Vendor Management")
	b.field("Written Vendor Agreements:", pick(a.Bool("vendor_agreements"), "In place for all vendors", "Not in place"))
	b.field("Vendor Compliance Monitoring:", pick(a.Bool("vendor_monitoring"), "Regular monitoring conducted", "Not regularly monitored"))

	b.heading("Risk Assessment and Annual Review")
	b.subheading("Ongoing Risk Management")
	b.para("This WISP is reviewed annually to ensure continued effectiveness and compliance with applicable regulations. The review process includes:")
	b.bullets(reviewItems...)
	b.field("Next Review Date:", nextReview(a, created))

	b.pageBreak()
	b.centered("This Written Information Security Plan was created on " + longDate(created))
	b.centered(summaryFooter)
}

// nextReview is the annual review date, or one year after creation.
func nextReview(a answers, created time.Time) string {
	if v := a.date("annual_review_date"); v != "" {
		return v
	}
	return longDate(created.AddDate(1, 0, 0))
}

func withoutEmail(in models.Answers) models.Answers {
	out := in.Clone()
	delete(out, "contact_email")
	return out
}
