package steps

// Count is the number of wizard steps.
const Count = 6

func text(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindText}
}

func paragraph(name, label, help string) Field {
	return Field{Name: name, Label: label, Help: help, Kind: KindParagraph}
}

func boolean(name, label string) Field {
	return Field{Name: name, Label: label, Kind: KindBoolean}
}

func choice(name, label string, choices ...Choice) Field {
	return Field{Name: name, Label: label, Kind: KindChoice, Choices: choices}
}

func required(f Field) Field {
	f.Required = true
	return f
}

func help(f Field, text string) Field {
	f.Help = text
	return f
}

func format(f Field, fm Format) Field {
	f.Format = fm
	return f
}

// inventory returns the two fill-in slots of a PII inventory category.
func inventory(prefix, label, hint string) []Field {
	return []Field{
		help(text(prefix+"_1", label+" #1"), hint),
		text(prefix+"_2", label+" #2"),
	}
}

// vendorControl returns a checklist boolean and its vendor/date field.
func vendorControl(name, label, vendorName, vendorLabel string) []Field {
	return []Field{
		boolean(name, label),
		text(vendorName, vendorLabel+" Vendor/Date"),
	}
}

func concat(groups ...[]Field) []Field {
	var out []Field
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}

var companyInfo = Step{
	Index: 1,
	Title: "Company Information",
	Fields: []Field{
		required(text("company_name", "Company Name")),
		required(text("street_address", "Street Address")),
		required(text("city", "City")),
		required(text("state", "State")),
		required(text("zip_code", "ZIP Code")),
		required(format(text("contact_email", "Contact Email"), FormatEmail)),
		format(text("phone_number", "Phone Number"), FormatPhone),
		text("website", "Website"),
		required(choice("company_size", "Company Size",
			Choice{"1-10", "1-10 employees"},
			Choice{"11-50", "11-50 employees"},
			Choice{"51-200", "51-200 employees"},
			Choice{"201-1000", "201-1000 employees"},
			Choice{"1000+", "1000+ employees"},
		)),
		required(choice("industry", "Industry",
			Choice{"accounting", "Accounting/CPA"},
			Choice{"legal", "Legal Services"},
			Choice{"healthcare", "Healthcare"},
			Choice{"financial", "Financial Services"},
			Choice{"consulting", "Consulting"},
			Choice{"technology", "Technology"},
			Choice{"manufacturing", "Manufacturing"},
			Choice{"retail", "Retail"},
			Choice{"other", "Other"},
		)),
		required(help(text("prepared_by", "WISP Prepared By (Name)"), "Name of person preparing this WISP")),
		required(help(format(text("annual_review_date", "Annual Review Date"), FormatDate),
			"Date for annual WISP review (typically one year from creation)")),
		text("ein_number", "Employer Identification Number (EIN)"),
		help(text("efin_number", "Electronic Filing Identification Number (EFIN)"),
			"Required for tax preparers who file electronically"),
	},
}

var dataCollection = Step{
	Index: 2,
	Title: "Data Collection",
	Fields: concat(
		[]Field{
			required(choice("personal_info_types", "Types of Personal Information Collected",
				Choice{"basic", "Basic contact information only"},
				Choice{"financial", "Financial information (SSN, banking, etc.)"},
				Choice{"healthcare", "Healthcare/medical information"},
				Choice{"employment", "Employment records and payroll"},
				Choice{"comprehensive", "Comprehensive personal data"},
			)),
			paragraph("data_sources", "Data Collection Sources",
				"Describe how and where you collect personal information"),
			required(choice("data_retention", "Data Retention Period",
				Choice{"1year", "1 year"},
				Choice{"3years", "3 years"},
				Choice{"7years", "7 years"},
				Choice{"indefinite", "Indefinite/As required by law"},
			)),
			boolean("data_destruction", "Do you have a process to destroy data when no longer needed?"),
		},
		inventory("third_party_apps", "Third-party App", "Name of third-party application that contains PII"),
		inventory("cloud_providers", "Cloud Provider", "Name of cloud service provider (e.g., Google Drive, Dropbox)"),
		inventory("data_storage", "Data Storage Solution", "Primary data storage location/method"),
		inventory("email_providers", "Email Provider", "Primary email service provider"),
		inventory("crm_systems", "CRM System", "Customer Relationship Management systems"),
		inventory("social_media_contractors", "Social Media Contractor", "Third-party managing social media accounts"),
	),
}

var systems = Step{
	Index: 3,
	Title: "Systems and Software",
	Fields: []Field{
		boolean("quickbooks", "QuickBooks"),
		boolean("adp", "ADP Payroll"),
		boolean("workday", "Workday"),
		boolean("salesforce", "Salesforce"),
		boolean("office365", "Microsoft 365"),
		boolean("google_workspace", "Google Workspace"),
		paragraph("custom_software", "Other Systems/Software",
			"List any other systems that handle sensitive data"),
	},
}

var securityControls = Step{
	Index: 4,
	Title: "Security Controls",
	Fields: concat(
		vendorControl("qualified_individual_designated", "Qualified individual designated", "qualified_individual_vendor", "Qualified Individual"),
		vendorControl("risk_assessment_conducted", "Risk assessment conducted", "risk_assessment_vendor", "Risk Assessment"),
		vendorControl("encryption_at_rest", "Encryption at rest", "encryption_at_rest_vendor", "Encryption at Rest"),
		vendorControl("encryption_in_transit", "Encryption in transit", "encryption_in_transit_vendor", "Encryption in Transit"),
		vendorControl("mfa_enabled", "Multi-Factor Authentication (MFA) enabled", "mfa_vendor", "MFA"),
		vendorControl("continuous_monitoring", "Continuous monitoring with IDS/RMM or network scan and penetration testing", "continuous_monitoring_vendor", "Continuous Monitoring"),
		vendorControl("security_awareness_training", "Security awareness training", "security_awareness_vendor", "Security Awareness Training"),
		vendorControl("assess_providers", "Assess providers", "assess_providers_vendor", "Assess Providers"),
		vendorControl("annual_wisp_review", "Annual WISP review", "annual_wisp_review_vendor", "Annual WISP Review"),
		vendorControl("wisp_developed", "Written Information Security Plan developed", "wisp_developed_vendor", "WISP Development"),
		vendorControl("annual_director_reports", "Annual director reports", "annual_director_reports_vendor", "Annual Director Reports"),
		vendorControl("annual_disposal_records", "Annual disposal of records", "annual_disposal_vendor", "Annual Disposal"),
		vendorControl("restricted_access_data", "Restricted access to data", "restricted_access_vendor", "Restricted Access"),
		vendorControl("complex_passwords_required", "Require complex passwords", "complex_passwords_vendor", "Complex Passwords"),
		vendorControl("firewall_protection", "Firewall", "firewall_vendor", "Firewall"),
		vendorControl("ids_enabled", "Intrusion detection systems (IDS)", "ids_vendor", "IDS"),
		vendorControl("segmented_network", "Segmented / IOT / Guest network", "segmented_network_vendor", "Segmented Network"),
		vendorControl("endpoint_security", "Endpoint security", "endpoint_security_vendor", "Endpoint Security"),
		vendorControl("third_party_patch_mgmt", "Third-party patch management", "third_party_patch_vendor", "Third-party Patch Management"),
		vendorControl("windows_patch_mgmt", "Windows patch management", "windows_patch_vendor", "Windows Patch Management"),
		[]Field{
			// IRS Security Six
			text("antivirus_solution", "Antivirus solution name/provider"),
			text("endpoint_detection_solution", "Endpoint detection and response solution name/provider"),
			text("intrusion_detection_solution", "Intrusion detection systems solution name/provider"),
			text("backup_solution", "Backup solution name/provider"),
			boolean("backup_encrypted", "Is backup encrypted?"),
			text("firewall_solution", "Firewall solution name/provider"),
			text("encryption_solution", "Drive encryption solution name/provider"),
			text("mfa_solution", "Multifactor authentication solution name/provider"),
			text("vpn_solution", "VPN solution name/provider"),

			// Password policy
			{
				Name:    "password_min_length",
				Label:   "Minimum Password Length",
				Kind:    KindChoice,
				Default: "8",
				Choices: []Choice{
					{"8", "8 characters"},
					{"10", "10 characters"},
					{"12", "12 characters"},
					{"16", "16 characters"},
				},
			},
			boolean("password_complexity", "Password complexity requirements enabled"),
			boolean("password_history_enabled", "Password history enforced (24 max remembered)"),
			boolean("password_manager_required", "Password manager required for all accounts"),
			boolean("default_passwords_changed", "Default/temporary passwords changed"),
			boolean("password_secure_storage", "Passwords stored in secure location"),
			boolean("password_manager_mfa", "MFA enabled for password manager"),

			// Wireless
			boolean("wireless_wpa2_enabled", "WPA2/WPA3 encryption enabled"),
			boolean("wireless_ssid_hidden", "Wireless SSID hidden from public view"),
			boolean("wireless_guest_network", "Separate guest wireless network available"),
			boolean("wireless_admin_password_changed", "Default router admin passwords changed"),
			boolean("wireless_tx_power_reduced", "WLAN transmit power reduced to office area only"),
			boolean("wireless_wep_disabled", "WEP encryption disabled (not used)"),

			text("rmm_solution", "Remote Monitoring and Management (RMM) solution"),
			boolean("browser_patch_mgmt", "Patch management on browsers"),
			boolean("stored_passwords_disabled", "Stored password feature disabled"),
			boolean("incident_response_printed", "Incident response plan printed and readily available"),
			text("security_training_method", "Security awareness training method"),
			boolean("unnecessary_software_blocked", "Installing unnecessary software disallowed"),
			boolean("device_inventory_performed", "Inventory of devices containing client data performed"),
			boolean("client_data_access_limited", "Access to stored client data limited/disabled"),
			text("client_data_protection_solution", "Client data protection solution name/provider"),
		},
	),
}

var vendors = Step{
	Index: 5,
	Title: "Third-Party Vendors",
	Fields: []Field{
		paragraph("vendor_list", "Third-Party Vendors with Data Access",
			"List all vendors, contractors, or service providers who have access to sensitive data"),
		boolean("vendor_agreements", "Do you have written agreements with all vendors regarding data protection?"),
		boolean("vendor_monitoring", "Do you regularly monitor vendor compliance?"),
	},
}

var employeeAccess = Step{
	Index: 6,
	Title: "Employee Access and Incident Response",
	Fields: []Field{
		boolean("access_control", "Do you have role-based access controls?"),
		boolean("employee_training", "Do you provide regular security awareness training?"),
		choice("training_frequency", "Training Frequency",
			Choice{"quarterly", "Quarterly"},
			Choice{"biannual", "Twice per year"},
			Choice{"annual", "Annual"},
			Choice{"onboarding", "New employee onboarding only"},
		),
		help(text("security_awareness_method", "Security Awareness Training Method"),
			"How do you conduct security awareness training?"),
		boolean("incident_response", "Do you have a written incident response plan?"),
		boolean("background_checks", "Do you conduct background checks for employees with data access?"),

		boolean("confidentiality_agreements", "All employees sign confidentiality agreements"),
		boolean("employee_access_review", "Regular review of employee access rights"),
		boolean("employee_termination_process", "Formal process for revoking access when employees leave"),
		boolean("remote_work_policy", "Written remote work security policy"),

		required(help(text("qualified_individual_name", "Qualified Individual Name"),
			"Person responsible for implementing and supervising the information security program")),
		paragraph("qualified_individual_qualifications", "Qualifications/Experience",
			"Describe their cybersecurity qualifications and experience"),
		help(text("qualified_individual_supervisor", "Supervisor"),
			"Who does the Qualified Individual report to?"),

		help(text("incident_coordinator_name", "Incident Coordinator Name"),
			"Primary person responsible for coordinating incident response"),
		format(text("incident_coordinator_phone", "Incident Coordinator Phone"), FormatPhone),
		text("incident_team_member_1", "Incident Team Member #1"),
		format(text("incident_team_member_1_phone", "Team Member #1 Phone"), FormatPhone),
		text("incident_team_member_2", "Incident Team Member #2"),
		format(text("incident_team_member_2_phone", "Team Member #2 Phone"), FormatPhone),

		help(text("tech_company", "IT Support Company Name"), "Primary technology support company"),
		format(text("tech_company_phone", "IT Support Phone Number"), FormatPhone),
		text("legal_counsel_name", "Legal Counsel Name"),
		format(text("legal_counsel_phone", "Legal Counsel Phone"), FormatPhone),
		text("insurance_broker", "Insurance Broker/Company"),
		text("insurance_policy", "Insurance Policy Information"),

		boolean("annual_penetration_test", "Annual penetration testing conducted"),
		boolean("vulnerability_assessments", "Regular vulnerability assessments"),
		boolean("system_scans", "System-wide security scans every six months"),
		boolean("security_awareness_testing", "Phishing simulation testing for employees"),

		boolean("efin_monitoring_process", "EFIN monitoring process implemented"),
		choice("efin_status_check_frequency", "EFIN Status Check Frequency",
			Choice{"weekly", "Weekly"},
			Choice{"biweekly", "Bi-weekly"},
			Choice{"monthly", "Monthly"},
		),
	},
}

var all = []Step{companyInfo, dataCollection, systems, securityControls, vendors, employeeAccess}

var byName = func() map[string]Field {
	m := make(map[string]Field)
	for _, s := range all {
		for _, f := range s.Fields {
			if _, dup := m[f.Name]; dup {
				panic("steps: duplicate field " + f.Name)
			}
			m[f.Name] = f
		}
	}
	return m
}()

// All returns every step in order.
func All() []Step {
	return all
}

// Get returns step n (1-based).
func Get(n int) (Step, bool) {
	if n < 1 || n > len(all) {
		return Step{}, false
	}
	return all[n-1], true
}

// Lookup returns the field with the given name from any step.
func Lookup(name string) (Field, bool) {
	f, ok := byName[name]
	return f, ok
}
