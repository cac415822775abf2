package report

// Fixed report text. Paragraph boundaries matter: each entry wraps on its own
// and is separated from the next by a blank line or paragraph gap.

var commentsParagraphs = []string{
	"The Evaluation Company is a member of the National Association of Credential Evaluation Services (NACES). This evaluation is advisory only.",

	"All documentation submitted to TEC is reviewed internally. At a minimum, TEC requires authentication of the highest post-secondary academic credential per country of study as well as professional credentials from most countries. TEC also requires authentication of secondary school credentials from Vietnam, Dominican Republic, Haiti, and all member countries of the West African Examinations Council. As of the original issuance of this evaluation, verification of authenticity is not possible for most credentials from Afghanistan, Cuba, Eritrea, Gaza Strip, Libya, Myanmar, Sudan, Syria, Turkmenistan, Ukraine, and Yemen. Any exceptions will be noted in the body of this report.",
}

const (
	retentionLineFormat = "Records pertaining to this file will be retained until %s"
	preparedByLine      = "Prepared by: The Evaluation Company"
	issuingOfficeLine   = "Issuing Office - Houston, TX"
)

var policyHeaders = map[string]bool{
	"General Information and Policy Statements for Services": true,
	"Credential Evaluation Policies":                         true,
}

var policyParagraphs = []string{
	"General Information and Policy Statements for Services",

	"Located in Houston, Texas, New York, New York, Miami, Florida (intake office), and Los Angeles, California (intake office). The Evaluation Company referred to herein as TEC, provides academic credential evaluations, verification, and translations. TEC was incorporated in Texas in 1989, and joined the National Association of Credential Evaluation Services (NACES®) as a regular member in 1996.",

	"TEC does not discriminate on the basis of race, disability, religion, gender, national origin, or age. However, as a private company not supported by any governmental or public funds, TEC retains the right to decline to provide services according to internal business practices and policies.",

	"TEC retains evaluations and translations for five years from the date of file initiation. Questions regarding completed services must be submitted in writing within 30 calendar days of the date the evaluation was issued. Questions submitted after 30 calendar days must be submitted in writing, and accompanied by a non-refundable revision fee of $50.00. This fee covers administrative costs and does not guarantee that any modifications will be made to the evaluation.",

	"Credential Evaluation Policies",

	"The U.S. government does not set standards for the evaluation of foreign educational credentials. TEC bases its evaluations on extensive in-house research, information gained through participation in professional development opportunities, and on-line and print resources. TEC is a member of NACES® but evaluation methodologies and outcomes vary among NACES member organizations. The recipient retains the right to accept, modify, or reject the recommendation(s) listed on the evaluation.",

	"TEC does not knowingly evaluate falsified or altered documents. In cases of confirmed forgeries, TEC shares this information with NACES member organizations and notifies other entities as deemed appropriate.",

	"General Analysis evaluations state recommended U.S. equivalency/ies and establish recognition/accreditation. Course Analysis evaluations additionally list coursework with a converted U.S. grade and credit value for each course, and a cumulative grade point average. Divisional Course Analysis evaluations provide the same information and also indicate the course level as follows: L = lower level (required prerequisites and entry-level undergraduate coursework), U = upper level (advanced-level undergraduate coursework), and G = graduate level (beyond undergraduate level coursework). Engineering and Teacher Course Analysis evaluations group courses by category. Nursing Course Analysis evaluations provide the same information as Divisional Course Analysis evaluations, and also include clinical and/or practical training if listed on the submitted documentation.",

	"Course Analysis evaluations include recommended U.S. semester credit hours. In the U.S., one semester credit hour requires a minimum of 15 contact hours of theoretical instruction or 30 to 45 contact hours of laboratory and/or practical instruction per semester. A typical student enrolled in full-time studies in U.S. higher education earns approximately 30 semester credit hours per academic year.",

	"TEC converts foreign academic credits, units, hours, etc. into U.S. semester credit hours regardless of the number of foreign credits, units, hours earned or completed. Courses may be assigned a lower number of U.S. semester credit hours than the applicant expects to receive; some courses may receive only one or two credits while others may receive no credit at all. Evaluations state the total recommended credit hours and may list courses for which no U.S. credit is recommended.",

	"Foreign grades are converted to U.S. letter grades based on the 4.00 system. Letter grade values are generally: A = 4.00, A- = 3.67, B+ = 3.33, B = 3.00, B- = 2.67, C+ = 2.33, C = 2.00, C- = 1.67, D+ = 1.33, D = 1.00, D- = 0.67/D-, F = 0.00. A grade point average/GPA is a weighted average by which recommended credits per course are multiplied by the 4.00-based grade per course arriving at quality points. The total number of quality points are then divided by the total number of attempted credits. TEC lists the equivalent grade per course, including failures, incomplete, withdrawn, and pass grades. Failures are included in grade point average calculation. In cases of pass/fail grades, pass grades are awarded credit but not factored into the grade point average. If a specific course is attempted multiple times, the evaluation only includes the first and final attempts. The cumulative grade point average/CGPA will reflect both grades.",
}
