package document

import (
	"fmt"
	"strings"
	"time"
)

func comprehensive(b *builder, a answers, at time.Time) {
	titlePage(b, a, at)

	b.heading("I. OBJECTIVE")
	b.para(fmt.Sprintf(objectiveText, a.company()))
	b.spacer()

	b.heading("II. PURPOSE")
	b.bullets(purposeItems...)
	b.spacer()

	b.heading("III. SCOPE")
	b.bullets(scopeItems...)
	b.spacer()
	b.heading("PII includes")
	b.bullets(piiItems...)
	b.pageBreak()

	b.heading("Checklist: Required FTC Software and Policies")
	b.table(checklistTable(a))
	b.pageBreak()

	securitySix(b, a)
	b.pageBreak()

	passwordAndWireless(b, a)
	b.pageBreak()

	inventoryList(b, a)
	b.pageBreak()

	qualifiedIndividual(b, a)
	b.pageBreak()

	b.heading("IV. ADMINISTRATIVE SAFEGUARDS")
	narratives(b, a, administrativeSafeguards)
	employeeControls(b, a)

	b.heading("V. TECHNICAL SAFEGUARDS")
	narratives(b, a, technicalSafeguards)
	b.subheading("Additional Technical Controls")
	b.field("Remote Monitoring and Management:", a.text("rmm_solution"))
	b.field("Browser Patch Management:", a.yesNo("browser_patch_mgmt"))
	b.field("Stored Browser Passwords Disabled:", a.yesNo("stored_passwords_disabled"))
	b.field("Unnecessary Software Blocked:", a.yesNo("unnecessary_software_blocked"))
	b.field("Client Data Access Limited:", a.yesNo("client_data_access_limited"))
	b.field("Client Data Protection:", a.text("client_data_protection_solution"))

	b.heading("VI. PHYSICAL SAFEGUARDS")
	b.para(physicalIntro)
	b.bullets(physicalMeasures...)
	narratives(b, a, physicalSafeguards)
	b.pageBreak()

	vendorManagement(b, a)
	incidentContacts(b, a)
	b.pageBreak()

	riskReview(b, a)
}

func titlePage(b *builder, a answers, at time.Time) {
	b.title("Written Information Security Plan (WISP)")
	b.spacer()
	b.label("PREPARED FOR")
	b.centered(a.company())
	for _, line := range addressLines(a) {
		b.centered(line)
	}
	b.spacer()
	if v := a.String("prepared_by"); v != "" {
		b.centered("Prepared by: " + v)
	}
	b.centered("Created on: " + longDate(at))
	if v := a.date("annual_review_date"); v != "" {
		b.centered("Annual Review Date: " + v)
	}
	b.pageBreak()
}

// addressLines returns the populated parts of the company address block.
func addressLines(a answers) []string {
	var lines []string
	if v := a.String("street_address"); v != "" {
		lines = append(lines, v)
	}
	city, state := a.String("city"), a.String("state")
	if city != "" && state != "" {
		line := city + ", " + state
		if zip := a.String("zip_code"); zip != "" {
			line += " " + zip
		}
		lines = append(lines, line)
	}
	if v := a.String("contact_email"); v != "" {
		lines = append(lines, v)
	}
	return lines
}

// checklistTable builds the FTC checklist with one row per FTCChecklist item,
// in order.
func checklistTable(a answers) *Table {
	t := &Table{Columns: ChecklistColumns}
	for _, item := range FTCChecklist {
		inPlace := a.Bool(item.Field)
		t.Rows = append(t.Rows, []string{
			item.Description,
			item.Citation,
			pick(inPlace, Mark, ""),
			pick(inPlace, "", Mark),
			a.String(item.VendorField),
		})
	}
	return t
}

func securitySix(b *builder, a answers) {
	b.heading(`Checklist: IRS "Security Six"`)
	six := []struct{ category, label, value string }{
		{"Use an antivirus", "Antivirus installed:", a.String("antivirus_solution")},
		{"Use backup software/services", "Backup:", a.String("backup_solution")},
		{"", "Is it encrypted?", a.yesNo("backup_encrypted")},
		{"Use a firewall", "Firewall:", a.String("firewall_solution")},
		{"Use drive encryption", "Encryption through:", a.String("encryption_solution")},
		{"Multifactor authentication", "Accessing customer data:", a.String("mfa_solution")},
		{"Create and secure virtual private networks", "VPN:", a.String("vpn_solution")},
	}
	for _, s := range six {
		if s.category != "" {
			b.subheading(s.category)
		}
		b.field(s.label, s.value)
	}
	b.spacer()
	b.field("Endpoint detection and response:", a.or("endpoint_detection_solution", "Solution name/provider"))
	b.field("Intrusion detection systems:", a.or("intrusion_detection_solution", "Solution name/provider"))
}

func passwordAndWireless(b *builder, a answers) {
	enabled := func(name string) string { return pick(a.Bool(name), "Enabled", "Disabled") }

	b.heading("IRS Publication 4557: Safeguarding Taxpayer Data")
	b.subheading("Create strong passwords")
	b.para(fmt.Sprintf("Minimum of %s characters", a.or("password_min_length", "8")))
	b.para("Password must meet complexity requirements: " + enabled("password_complexity"))
	b.para("Enforce password history: 24 (max) passwords remembered - " + enabled("password_history_enabled"))
	b.para("Require a password manager for all accounts - " + a.yesNo("password_manager_required"))
	b.para("Avoid personal information use phrases instead")
	b.para("Change default/temporary passwords that come with accounts including printers - " + a.yesNo("default_passwords_changed"))
	b.para("Store passwords in a secure location like a safe or locked file cabinet - " + a.yesNo("password_secure_storage"))
	b.para("Use MFA for password manager - " + a.yesNo("password_manager_mfa"))
	b.spacer()

	b.subheading("Secure wireless networks")
	b.para("Default login on router? " + pick(a.Bool("wireless_admin_password_changed"), "Changed", "Not changed"))
	b.para("Turn off public SSID - " + a.yesNo("wireless_ssid_hidden"))
	b.para("Change guest wireless network to unidentifiable name - " + a.yesNo("wireless_guest_network"))
	b.para("Reduce WLAN Transmit power (TX) range to not work outside of office if needed - " + a.yesNo("wireless_tx_power_reduced"))
	b.para("WPA2 and AES Encryption enabled - " + a.yesNo("wireless_wpa2_enabled"))
	b.para("Do not use WEP - " + pick(a.Bool("wireless_wep_disabled"), "WEP Disabled", "Check WEP status"))
}

func inventoryList(b *builder, a answers) {
	b.heading("PII inventory list")
	b.para("List anywhere that contains PII. Examples include but are not limited to:")
	b.spacer()
	for i, c := range PIIInventory {
		b.para(fmt.Sprintf("%d. %s", i+1, c.Title))
		b.item(1, "a. "+a.blank(c.Prefix+"_1"))
		b.item(1, "b. "+a.blank(c.Prefix+"_2"))
	}
}

func qualifiedIndividual(b *builder, a answers) {
	b.heading("Qualified Individual implementing and supervising the information security program")
	b.field("Qualified Individual:", a.blank("qualified_individual_name"))
	b.field("Qualifications/experience:", a.blank("qualified_individual_qualifications"))
	b.field("Supervisor:", a.blank("qualified_individual_supervisor"))
	b.spacer()
	b.para(qualifiedIndividualReport)
}

// narratives renders each safeguard with the phrasing for its answer.
func narratives(b *builder, a answers, list []safeguard) {
	for _, s := range list {
		on := a.Bool(s.Field)
		b.subheading(s.Title)
		b.field(s.Label+":", pick(on, s.Implemented, s.Missing))
		b.para(pick(on, s.Recommend, s.Recommended))
	}
}

func employeeControls(b *builder, a answers) {
	b.subheading("Employee Policies")
	b.field("Training Frequency:", a.label("training_frequency"))
	b.field("Training Method:", a.or("security_awareness_method", a.text("security_training_method")))
	b.field("Confidentiality Agreements:", a.yesNo("confidentiality_agreements"))
	b.field("Access Rights Review:", a.yesNo("employee_access_review"))
	b.field("Remote Work Policy:", a.yesNo("remote_work_policy"))
	b.field("Phishing Simulation Testing:", a.yesNo("security_awareness_testing"))
	if a.String("efin_number") != "" || a.Bool("efin_monitoring_process") {
		b.field("EFIN Monitoring:", pick(a.Bool("efin_monitoring_process"), "Implemented", "Not implemented"))
		b.field("EFIN Status Checks:", a.label("efin_status_check_frequency"))
	}
}

func vendorManagement(b *builder, a answers) {
	b.heading("VII. VENDOR MANAGEMENT")
	if v := a.String("vendor_list"); v != "" {
		b.subheading("Vendors with Data Access")
		for _, line := range lines(v) {
			b.para(line)
		}
	}
	b.field("Written Vendor Agreements:", pick(a.Bool("vendor_agreements"), "In place for all vendors", "Not in place"))
	b.field("Vendor Compliance Monitoring:", pick(a.Bool("vendor_monitoring"), "Regular monitoring conducted", "Not regularly monitored"))
	b.spacer()
}

func incidentContacts(b *builder, a answers) {
	b.heading("VIII. INCIDENT RESPONSE CONTACTS")
	contacts := []struct{ role, name, phone string }{
		{"Incident Coordinator", "incident_coordinator_name", "incident_coordinator_phone"},
		{"Team Member #1", "incident_team_member_1", "incident_team_member_1_phone"},
		{"Team Member #2", "incident_team_member_2", "incident_team_member_2_phone"},
		{"IT Support", "tech_company", "tech_company_phone"},
		{"Legal Counsel", "legal_counsel_name", "legal_counsel_phone"},
	}
	t := &Table{Columns: []Column{
		{Title: "Role", Width: 2.0},
		{Title: "Name", Width: 2.6},
		{Title: "Phone", Width: 2.0},
	}}
	for _, c := range contacts {
		t.Rows = append(t.Rows, []string{c.role, a.text(c.name), a.String(c.phone)})
	}
	b.table(t)
	b.field("Insurance Broker/Company:", a.text("insurance_broker"))
	b.field("Insurance Policy:", a.text("insurance_policy"))
}

func riskReview(b *builder, a answers) {
	b.heading("IX. RISK ASSESSMENT AND ANNUAL REVIEW")
	b.field("Annual Penetration Testing:", a.yesNo("annual_penetration_test"))
	b.field("Vulnerability Assessments:", a.yesNo("vulnerability_assessments"))
	b.field("Semiannual System Scans:", a.yesNo("system_scans"))
	b.spacer()
	b.para("This WISP is reviewed annually to ensure continued effectiveness and compliance with applicable regulations. The review process includes:")
	b.bullets(reviewItems...)
	if v := a.date("annual_review_date"); v != "" {
		b.field("Next Review Date:", v)
	}
}

// lines splits a paragraph answer into its non-empty lines.
func lines(s string) []string {
	var out []string
	for _, l := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			out = append(out, l)
		}
	}
	return out
}
