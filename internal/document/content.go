package document

const (
	rightworksFooter = "Alpharetta, GA | Bloomington, IN | Nashua, NH | rightworks.com | 866.923.6874"
	summaryFooter    = "Generated using WISP Generator - Ensuring IRS Publication 4557 and GLBA Compliance"
)

// ChecklistItem is one row of the FTC checklist. The order of FTCChecklist
// is the identity of the table and must not change.
type ChecklistItem struct {
	Description string
	Citation    string
	Field       string
	VendorField string
}

// FTCChecklist lists the required FTC software and policies.
var FTCChecklist = []ChecklistItem{
	{"Designate a qualified individual", "16 CFR 314.4 (a)", "qualified_individual_designated", "qualified_individual_vendor"},
	{"Conduct risk assessment", "16 CFR 314.4 (a)", "risk_assessment_conducted", "risk_assessment_vendor"},
	{"Encryption at rest", "16 CFR 314.4 (c) (3)", "encryption_at_rest", "encryption_at_rest_vendor"},
	{"Encryption in transit", "16 CFR 314.4 (c) (3)", "encryption_in_transit", "encryption_in_transit_vendor"},
	{"Multifactor authentication", "16 CFR 314.4 (c) (5)", "mfa_enabled", "mfa_vendor"},
	{"Continuous monitoring with IDS/RMM or network scan and penetration testing", "16 CFR 314.4 (d) (2)", "continuous_monitoring", "continuous_monitoring_vendor"},
	{"Security awareness training", "16 CFR 314.4 (e)", "security_awareness_training", "security_awareness_vendor"},
	{"Assess providers", "16 CFR 314.4 (f)", "assess_providers", "assess_providers_vendor"},
	{"Annual WISP review", "16 CFR 314.4 (g)", "annual_wisp_review", "annual_wisp_review_vendor"},
	{"Develop a Written Information Security Plan", "16 CFR 314.4 (h)", "wisp_developed", "wisp_developed_vendor"},
	{"Annual director reports", "16 CFR 314.4 (h)", "annual_director_reports", "annual_director_reports_vendor"},
	{"Annual disposal of records", "FTC SWS (1)", "annual_disposal_records", "annual_disposal_vendor"},
	{"Restricted access to data", "FTC SWS (2)", "restricted_access_data", "restricted_access_vendor"},
	{"Require complex passwords", "FTC SWS (3)", "complex_passwords_required", "complex_passwords_vendor"},
	{"Firewall", "FTC SWS (5)", "firewall_protection", "firewall_vendor"},
	{"Intrusion detection systems (IDS)", "FTC SWS (5)", "ids_enabled", "ids_vendor"},
	{"Segmented / IOT / Guest network", "FTC SWS (5)", "segmented_network", "segmented_network_vendor"},
	{"Endpoint security", "FTC SWS (6)", "endpoint_security", "endpoint_security_vendor"},
	{"Third-party patch management", "FTC SWS (6)", "third_party_patch_mgmt", "third_party_patch_vendor"},
	{"Windows patch management", "FTC SWS (6)", "windows_patch_mgmt", "windows_patch_vendor"},
}

// ChecklistColumns are the FTC checklist table columns.
var ChecklistColumns = []Column{
	{Title: "Description", Width: 2.2},
	{Title: "Citation", Width: 1.2},
	{Title: "In place", Width: 0.8, Center: true},
	{Title: "Not in place", Width: 0.8, Center: true},
	{Title: "Vendor/Date", Width: 1.4},
}

// Mark is the check drawn in the in place / not in place columns.
const Mark = "X"

// InventoryCategory is one PII inventory list with two fill-in slots.
type InventoryCategory struct {
	Title  string
	Prefix string
}

// PIIInventory is the fixed order of inventory categories.
var PIIInventory = []InventoryCategory{
	{"Third-party apps", "third_party_apps"},
	{"Cloud provider(s)", "cloud_providers"},
	{"Data storage(s)", "data_storage"},
	{"Email provider(s)", "email_providers"},
	{"CRM(s)", "crm_systems"},
	{"Social media contractor(s)", "social_media_contractors"},
}

// businessSystems are the standard systems of step 3, in display order.
var businessSystems = []struct {
	Name  string
	Field string
}{
	{"QuickBooks", "quickbooks"},
	{"ADP Payroll", "adp"},
	{"Workday", "workday"},
	{"Salesforce", "salesforce"},
	{"Microsoft 365", "office365"},
	{"Google Workspace", "google_workspace"},
}

const objectiveText = `The objective of %s's (the "Company") WISP is to support and document the implementation ` +
	`and maintenance of necessary protective measures the Company has selected to protect the personally ` +
	`identifiable information (PII) and other sensitive customer data it collects, creates, uses and maintains. ` +
	`This WISP has been prepared in line with the requirements and guidelines of the IRS, the Gramm-Leach-Bliley ` +
	`Act (GLBA), and the FTC Safeguards Rule. This document will also act as the comprehensive record of all ` +
	`internal policies and processes designed to secure information of Company's customers.`

var purposeItems = []string{
	"Ensure the proper security and confidentiality of PII and other sensitive customer information collected, created and maintained.",
	"Comply with applicable data security laws; including IRS Publication 4557, 5708 and the FTC Safeguards Rule.",
	"Document and show auditors/ data safeguards and policies.",
	"Define an information security program that is appropriate to the Company's size, business and resources, and the amount of PII and other sensitive information maintained by the Company.",
	"Protect clients from unauthorized access.",
}

var scopeItems = []string{
	"Applies to all employees, contractors, officers and directors of the Company.",
	"Applies to any PII storage locations or records.",
	"Applies to security of PII and sensitive information of both the company and its clients.",
	"Cataloging existing preventive strategies against data breaches.",
	"Ongoing evaluation and review of the efficacy of the established protective measures.",
	"For the purposes of this WISP, PII includes any of the following items to the extent it could be used, alone or in combination with other information, to identify a specific natural person or individual household:",
}

var piiItems = []string{
	"First and last name combination",
	"Personal phone number",
	"Purchase history",
	"Bank account information",
	"Credit card numbers",
	"CRM data",
	"Tax prep software data",
	"Driver's license information",
	"Social security number",
	"Date of birth",
	"Employment history",
	"Previous tax returns",
	"Financial statements",
	"Private email addresses",
}

const qualifiedIndividualReport = `Company's Qualified Individual shall report in writing to the Company's [Board of Directors] ` +
	`[senior management] and such report shall include an overall assessment of Company's compliance with the ` +
	`information security program and provide specific reporting on the elements provided in this Written ` +
	`Information Security Plan, as well as security events and how management responded, and recommendations ` +
	`for changes in the information security program.`

var physicalMeasures = []string{
	"Office doors are locked when unattended",
	"Computer screens are locked when away from desk",
	"Sensitive documents are stored in locked cabinets",
	"Clean desk policy is enforced",
	"Visitor access is monitored and logged",
}

const physicalIntro = `Physical access to areas containing sensitive information is restricted to authorized ` +
	`personnel only. This includes computer workstations, file cabinets, and any physical storage containing ` +
	`customer data.`

var reviewItems = []string{
	"Assessment of current security controls and their effectiveness",
	"Identification of new threats and vulnerabilities",
	"Review of any security incidents that occurred during the year",
	"Evaluation of changes in business operations or technology",
	"Updates to policies and procedures as needed",
	"Employee training program effectiveness review",
}

// safeguard is a narrative paragraph that depends on one boolean answer.
type safeguard struct {
	Title       string
	Label       string
	Field       string
	Implemented string
	Missing     string
	Recommend   string
	Recommended string
}

var administrativeSafeguards = []safeguard{
	{
		Title: "Access Control and User Management", Label: "Role-Based Access Controls", Field: "access_control",
		Implemented: "Implemented", Missing: "Not Implemented",
		Recommend:   "Employees are granted access to sensitive information only on a need-to-know basis according to their job responsibilities. Access rights are reviewed regularly and updated when roles change.",
		Recommended: "Access controls should be implemented to restrict data access based on job responsibilities.",
	},
	{
		Title: "Employee Training Program", Label: "Security Awareness Training", Field: "employee_training",
		Implemented: "Provided regularly", Missing: "Not provided",
		Recommend:   "All employees receive regular training on information security best practices, including password security, phishing awareness, and proper data handling procedures.",
		Recommended: "Security awareness training should be implemented for all employees handling sensitive data.",
	},
	{
		Title: "Incident Response", Label: "Written Incident Response Plan", Field: "incident_response",
		Implemented: "Documented and maintained", Missing: "Not documented",
		Recommend:   "Our incident response plan defines procedures for identifying, containing, and recovering from security incidents, including notification requirements and recovery steps.",
		Recommended: "An incident response plan should be developed to handle security breaches and data incidents.",
	},
	{
		Title: "Background Checks", Label: "Background Checks", Field: "background_checks",
		Implemented: "Conducted for data access roles", Missing: "Not conducted",
		Recommend:   "Employees with access to sensitive data are screened before access is granted.",
		Recommended: "Background checks should be conducted for employees who handle sensitive data.",
	},
	{
		Title: "Employee Offboarding", Label: "Access Revocation Process", Field: "employee_termination_process",
		Implemented: "Formal process in place", Missing: "No formal process",
		Recommend:   "Access to systems and data is revoked promptly when an employee leaves the Company.",
		Recommended: "A formal process should be established to revoke access when employees leave.",
	},
}

var technicalSafeguards = []safeguard{
	{
		Title: "Authentication and Access Security", Label: "Multi-Factor Authentication", Field: "mfa_enabled",
		Implemented: "Enabled", Missing: "Not Enabled",
		Recommend:   "Multi-factor authentication is required for access to systems containing customer information.",
		Recommended: "Multi-factor authentication should be enabled for any system that stores or accesses customer information.",
	},
	{
		Title: "Data Encryption", Label: "Encryption at Rest", Field: "encryption_at_rest",
		Implemented: "Implemented", Missing: "Not Implemented",
		Recommend:   "Customer information stored on Company systems is encrypted.",
		Recommended: "Drive and storage encryption should be implemented for all devices containing customer information.",
	},
	{
		Title: "Encryption in Transit", Label: "Encryption in Transit", Field: "encryption_in_transit",
		Implemented: "Implemented", Missing: "Not Implemented",
		Recommend:   "Customer information sent over external networks is encrypted.",
		Recommended: "Encryption should be used whenever customer information is transmitted over external networks.",
	},
	{
		Title: "Network Protection", Label: "Firewall Protection", Field: "firewall_protection",
		Implemented: "Active", Missing: "Not Active",
		Recommend:   "A firewall protects the office network and is kept up to date.",
		Recommended: "A firewall should be installed and maintained to protect the office network.",
	},
	{
		Title: "Patch Management", Label: "Security Updates", Field: "windows_patch_mgmt",
		Implemented: "Regular updates applied", Missing: "Not regularly applied",
		Recommend:   "Operating system security updates are applied on a regular schedule.",
		Recommended: "Security updates should be applied regularly to all operating systems and applications.",
	},
}

var physicalSafeguards = []safeguard{
	{
		Title: "Device Inventory", Label: "Device Inventory", Field: "device_inventory_performed",
		Implemented: "Performed", Missing: "Not performed",
		Recommend:   "An inventory of devices containing client data is maintained.",
		Recommended: "An inventory of all devices containing client data should be performed and kept current.",
	},
	{
		Title: "Incident Plan Availability", Label: "Printed Incident Response Plan", Field: "incident_response_printed",
		Implemented: "Available", Missing: "Not available",
		Recommend:   "A printed copy of the incident response plan is kept readily available.",
		Recommended: "A printed copy of the incident response plan should be kept where it can be reached during an outage.",
	},
	{
		Title: "Records Disposal", Label: "Data Destruction Process", Field: "data_destruction",
		Implemented: "Documented process in place", Missing: "No formal process documented",
		Recommend:   "When personal information is no longer needed for business purposes or legal requirements, it is securely destroyed using methods appropriate to the storage medium.",
		Recommended: "A data destruction policy should be implemented for secure disposal of sensitive information.",
	},
}
