// pkg/registry/defaults.go
package registry

import "time"

const registryVersion = "1.0.0"

// Default returns the built-in registry of every pipeline task type.
func Default() *ActivityRegistry {
	return &ActivityRegistry{
		Version:     registryVersion,
		LastUpdated: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC).Format(time.RFC3339),
		Activities:  defaultActivities(),
	}
}

var (
	rounds          = []interface{}{"ROUND_1", "ROUND_2", "HR_ROUND", "AI_VOICE_ROUND"}
	modes           = []interface{}{"ONLINE", "OFFLINE", "HYBRID"}
	decisions       = []interface{}{"SELECTED", "REJECTED", "ON_HOLD", "NEXT_ROUND"}
	employmentTypes = []interface{}{"FULL_TIME", "PART_TIME", "CONTRACT", "INTERNSHIP"}
	acceptance      = []interface{}{"EMAIL", "PORTAL", "SIGNED_COPY"}
	verification    = []interface{}{"PENDING", "IN_PROGRESS", "COMPLETED", "FAILED"}
	documentTypes   = []interface{}{
		"AADHAAR_CARD", "PAN_CARD", "PASSPORT_PHOTO", "EDUCATIONAL_CERTIFICATE", "ADDRESS_PROOF",
		"CANCELLED_CHEQUE", "EXPERIENCE_LETTER", "RELIEVING_LETTER", "SALARY_SLIPS", "COVID_CERTIFICATE",
	}
)

func object(required []string, props map[string]interface{}) map[string]interface{} {
	s := map[string]interface{}{
		"$schema":    "http://json-schema.org/draft-07/schema#",
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		req := make([]interface{}, len(required))
		for i, r := range required {
			req[i] = r
		}
		s["required"] = req
	}
	return s
}

func str() map[string]interface{} { return map[string]interface{}{"type": "string"} }

func id() map[string]interface{} {
	return map[string]interface{}{"type": "string", "minLength": 1}
}

func email() map[string]interface{} {
	return map[string]interface{}{"type": "string", "format": "email"}
}

func boolean() map[string]interface{} { return map[string]interface{}{"type": "boolean"} }

func enum(values []interface{}) map[string]interface{} {
	return map[string]interface{}{"type": "string", "enum": values}
}

func integer(min int) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "minimum": min}
}

func number(min, max float64) map[string]interface{} {
	return map[string]interface{}{"type": "number", "minimum": min, "maximum": max}
}

func strings() map[string]interface{} {
	return map[string]interface{}{"type": "array", "items": str()}
}

// date accepts YYYY-MM-DD or a full RFC 3339 timestamp.
func date() map[string]interface{} {
	return map[string]interface{}{
		"type":    "string",
		"pattern": `^\d{4}-\d{2}-\d{2}([Tt ].*)?$`,
	}
}

func schedulingProps(props map[string]interface{}) map[string]interface{} {
	for k, v := range map[string]interface{}{
		"interviewRound":    enum(rounds),
		"scheduledDate":     date(),
		"scheduledTime":     str(),
		"interviewMode":     enum(modes),
		"meetingLink":       str(),
		"venue":             str(),
		"interviewerNames":  strings(),
		"interviewerEmails": strings(),
		"interviewPanel":    str(),
		"notes":             str(),
		"notificationType":  str(),
	} {
		props[k] = v
	}
	return props
}

func activity(stage, taskType, name, description string, input map[string]interface{}, outputs []string, codes ...string) Activity {
	return Activity{
		ID:                   taskType,
		DisplayName:          name,
		Description:          description,
		Stage:                stage,
		Version:              registryVersion,
		TaskType:             taskType,
		ImplementationStatus: "completed",
		InputSchema:          input,
		OutputFields:         outputs,
		ErrorCodes:           append([]string{"INVALID_INPUT", "STORE_OPERATION_FAILED"}, codes...),
		Timeout:              "10s",
		Retries:              3,
		Tags:                 []string{stage},
	}
}

func defaultActivities() []Activity {
	onboardingOut := []string{"onboardingId", "onboardingStatus", "currentStep", "completionPercentage", "pendingDocuments"}
	offerOut := []string{"offerLetterId", "offerLetterNumber", "offerStatus", "candidateId"}
	interviewOut := []string{"interviewId", "interviewStatus", "interviewRound", "candidateId"}

	acts := []Activity{
		// capacity
		activity("capacity", "job-post", "Post Job", "Publishes a new OPEN job and exports it.",
			object([]string{"title", "company"}, map[string]interface{}{
				"jobId":           str(),
				"title":           id(),
				"company":         id(),
				"description":     str(),
				"location":        str(),
				"employmentType":  str(),
				"experienceLevel": str(),
				"requiredSkills":  str(),
				"salaryRange":     str(),
				"postedBy":        str(),
				"maxCandidates":   integer(0),
			}),
			[]string{"jobId", "jobStatus", "maxCandidates"},
			"JOB_ALREADY_EXISTS"),
		activity("capacity", "job-close", "Close Job", "Closes an OPEN job manually.",
			object([]string{"jobId"}, map[string]interface{}{"jobId": id()}),
			[]string{"jobId", "jobStatus", "applicationCount"},
			"JOB_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("capacity", "application-submit", "Submit Application",
			"Admits an application under the job's capacity guard and auto-closes the job when full.",
			object([]string{"jobId", "candidateName", "candidateEmail"}, map[string]interface{}{
				"jobId":          id(),
				"candidateName":  id(),
				"candidateEmail": email(),
				"candidatePhone": str(),
				"coverLetter":    str(),
				"resumeFileName": str(),
			}),
			[]string{"applicationId", "applicationStatus", "jobStatus", "applicationCount", "jobClosed"},
			"JOB_NOT_FOUND", "JOB_NOT_OPEN", "CAPACITY_EXCEEDED"),

		// shortlist
		activity("shortlist", "candidates-shortlist", "Shortlist Candidates",
			"Scores every application of a job and saves the ranked candidates above the floor.",
			object([]string{"jobId"}, map[string]interface{}{
				"jobId":         id(),
				"minScore":      number(0, 100),
				"maxCandidates": integer(0),
			}),
			[]string{"jobId", "totalProcessed", "shortlistedCount", "rejectedCount", "shortlistedCandidateIds"},
			"JOB_NOT_FOUND", "SCORING_COLLABORATOR_UNAVAILABLE"),
		activity("shortlist", "shortlist-status-update", "Review Shortlisted Candidate",
			"Approves or rejects a candidate awaiting review.",
			object([]string{"candidateId", "status"}, map[string]interface{}{
				"candidateId": id(),
				"status":      enum([]interface{}{"APPROVED", "REJECTED"}),
				"notes":       str(),
			}),
			[]string{"candidateId", "candidateStatus"},
			"CANDIDATE_NOT_FOUND", "INVALID_STATUS_TRANSITION"),

		// interview
		activity("interview", "interview-schedule", "Schedule Interview",
			"Books the candidate's next interview round and sends the invitation.",
			object([]string{"candidateId", "interviewRound", "scheduledDate"}, schedulingProps(map[string]interface{}{
				"candidateId": id(),
			})),
			append(interviewOut, "roundNumber", "isLastRound", "notificationSent"),
			"CANDIDATE_NOT_FOUND", "INTERVIEW_ALREADY_ACTIVE", "ROUND_OUT_OF_ORDER", "INVALID_STATUS_TRANSITION"),
		activity("interview", "interview-schedule-batch", "Schedule Interviews In Bulk",
			"Books the same round for many candidates; failures are reported per candidate.",
			object([]string{"candidateIds", "interviewRound", "scheduledDate"}, schedulingProps(map[string]interface{}{
				"candidateIds": map[string]interface{}{"type": "array", "items": id(), "minItems": 1},
			})),
			[]string{"totalScheduled", "totalFailed", "successEmails", "failedEmails", "interviewIds"}),
		activity("interview", "interview-feedback-submit", "Submit Interview Feedback",
			"Completes an interview and routes the candidate on the decision.",
			object([]string{"interviewId", "decision"}, map[string]interface{}{
				"interviewId":        id(),
				"decision":           enum(decisions),
				"technicalScore":     number(0, 10),
				"communicationScore": number(0, 10),
				"overallRating":      number(0, 10),
				"feedback":           str(),
				"interviewerRemarks": str(),
			}),
			append(interviewOut, "decision", "isLastRound", "offerEligible"),
			"INTERVIEW_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("interview", "interview-reschedule", "Reschedule Interview",
			"Moves an active interview to a new slot and notifies the candidate.",
			object([]string{"interviewId", "scheduledDate"}, map[string]interface{}{
				"interviewId":   id(),
				"scheduledDate": date(),
				"scheduledTime": str(),
				"notes":         str(),
			}),
			append(interviewOut, "notificationSent"),
			"INTERVIEW_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("interview", "interview-cancel", "Cancel Interview",
			"Cancels an active interview and frees the candidate.",
			object([]string{"interviewId"}, map[string]interface{}{
				"interviewId": id(),
				"reason":      str(),
			}),
			interviewOut,
			"INTERVIEW_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("interview", "interview-no-show", "Record Interview No-Show",
			"Marks an active interview as missed by the candidate.",
			object([]string{"interviewId"}, map[string]interface{}{"interviewId": id()}),
			interviewOut,
			"INTERVIEW_NOT_FOUND", "INVALID_STATUS_TRANSITION"),

		// offer
		activity("offer", "offer-generate", "Generate Offer Letter",
			"Issues the single offer an application may receive after HR round selection.",
			object([]string{"candidateId", "applicationId", "jobId", "interviewId", "joiningDate"}, map[string]interface{}{
				"candidateId":    id(),
				"applicationId":  id(),
				"jobId":          id(),
				"interviewId":    id(),
				"joiningDate":    date(),
				"expiryDate":     date(),
				"employmentType": enum(employmentTypes),
				"workLocation":   str(),
				"officeLocation": str(),
				"department":     str(),
				"compensation": map[string]interface{}{
					"type": "object",
					"properties": map[string]interface{}{
						"annualCtc":        number(0, 1e12),
						"basicSalary":      number(0, 1e12),
						"hra":              number(0, 1e12),
						"specialAllowance": number(0, 1e12),
						"performanceBonus": number(0, 1e12),
						"otherAllowances":  number(0, 1e12),
						"currency":         str(),
					},
				},
				"benefits":         str(),
				"paidLeaves":       integer(0),
				"probationPeriod":  integer(0),
				"noticePeriod":     integer(0),
				"reportingManager": str(),
				"candidateAddress": str(),
				"companyAddress":   str(),
				"generatedBy":      str(),
				"hrRemarks":        str(),
			}),
			append(offerOut, "expiryDate"),
			"INTERVIEW_NOT_FOUND", "INTERVIEW_NOT_ELIGIBLE", "OFFER_ALREADY_EXISTS", "CANDIDATE_NOT_FOUND"),
		activity("offer", "offer-send", "Send Offer Letter", "Marks a generated offer as sent.",
			object([]string{"offerLetterId"}, map[string]interface{}{"offerLetterId": id()}),
			offerOut, "OFFER_NOT_FOUND", "OFFER_EXPIRED", "INVALID_STATUS_TRANSITION"),
		activity("offer", "offer-accept", "Accept Offer Letter", "Records the candidate's acceptance.",
			object([]string{"offerLetterId"}, map[string]interface{}{
				"offerLetterId":     id(),
				"acceptanceMethod":  enum(acceptance),
				"acceptanceRemarks": str(),
			}),
			offerOut, "OFFER_NOT_FOUND", "OFFER_EXPIRED", "INVALID_STATUS_TRANSITION"),
		activity("offer", "offer-reject", "Reject Offer Letter", "Records the candidate declining.",
			object([]string{"offerLetterId"}, map[string]interface{}{
				"offerLetterId":   id(),
				"rejectionReason": str(),
			}),
			offerOut, "OFFER_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("offer", "offer-withdraw", "Withdraw Offer Letter", "Withdraws an unanswered offer.",
			object([]string{"offerLetterId"}, map[string]interface{}{
				"offerLetterId": id(),
				"reason":        str(),
			}),
			offerOut, "OFFER_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("offer", "offer-download", "Download Offer Letter", "Counts a download of the letter.",
			object([]string{"offerLetterId"}, map[string]interface{}{"offerLetterId": id()}),
			append(offerOut, "downloadCount"), "OFFER_NOT_FOUND"),
		activity("offer", "offer-eligible-list", "List Offer-Eligible Candidates",
			"Lists candidates selected in the HR round who have no offer yet.",
			object(nil, map[string]interface{}{}),
			[]string{"candidates", "count"}),
		activity("offer", "offer-expire-overdue", "Expire Overdue Offers",
			"Expires every outstanding offer past its expiry date.",
			object(nil, map[string]interface{}{}),
			[]string{"expiredOfferIds", "count"}),

		// onboarding
		activity("onboarding", "onboarding-create", "Start Onboarding",
			"Opens onboarding with the document checklist for an accepted offer.",
			object([]string{"offerLetterId"}, map[string]interface{}{
				"offerLetterId":                  id(),
				"personalEmail":                  email(),
				"department":                     str(),
				"designation":                    str(),
				"reportingManager":               str(),
				"workLocation":                   str(),
				"joiningDate":                    date(),
				"probationPeriod":                integer(0),
				"coordinator":                    str(),
				"backgroundVerificationRequired": boolean(),
				"hrRemarks":                      str(),
				"createdBy":                      str(),
			}),
			append(onboardingOut, "employeeId", "probationEndDate"),
			"OFFER_NOT_FOUND", "OFFER_NOT_ACCEPTED", "DUPLICATE_ONBOARDING"),
		activity("onboarding", "onboarding-document-upload", "Upload Onboarding Document",
			"Marks a checklist document submitted.",
			object([]string{"onboardingId", "documentType", "documentUrl"}, map[string]interface{}{
				"onboardingId": id(),
				"documentType": enum(documentTypes),
				"documentUrl":  id(),
				"documentName": str(),
				"fileType":     str(),
				"fileSize":     integer(0),
				"remarks":      str(),
			}),
			onboardingOut, "ONBOARDING_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("onboarding", "onboarding-document-verify", "Verify Onboarding Document",
			"Marks a submitted checklist document verified.",
			object([]string{"onboardingId", "documentType"}, map[string]interface{}{
				"onboardingId": id(),
				"documentType": enum(documentTypes),
				"verifiedBy":   str(),
				"remarks":      str(),
			}),
			onboardingOut, "ONBOARDING_NOT_FOUND", "DOCUMENT_NOT_SUBMITTED", "INVALID_STATUS_TRANSITION"),
		activity("onboarding", "onboarding-system-setup-update", "Update System Setup",
			"Records account, access, ID card and workstation provisioning.",
			object([]string{"onboardingId"}, map[string]interface{}{
				"onboardingId":         id(),
				"emailAccountCreated":  boolean(),
				"systemAccessProvided": boolean(),
				"idCardIssued":         boolean(),
				"workstationAssigned":  boolean(),
				"workstationNumber":    str(),
			}),
			onboardingOut, "ONBOARDING_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("onboarding", "onboarding-orientation-update", "Update Orientation",
			"Records the orientation session.",
			object([]string{"onboardingId"}, map[string]interface{}{
				"onboardingId":         id(),
				"orientationCompleted": boolean(),
				"orientationDate":      date(),
				"conductedBy":          str(),
				"remarks":              str(),
			}),
			onboardingOut, "ONBOARDING_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("onboarding", "onboarding-background-verification-update", "Update Background Verification",
			"Records the background verification outcome.",
			object([]string{"onboardingId", "status"}, map[string]interface{}{
				"onboardingId": id(),
				"status":       enum(verification),
				"remarks":      str(),
			}),
			onboardingOut, "ONBOARDING_NOT_FOUND", "INVALID_STATUS_TRANSITION"),
		activity("onboarding", "onboarding-complete", "Complete Onboarding",
			"Closes onboarding once documents, setup and orientation are done.",
			object([]string{"onboardingId", "approvedBy"}, map[string]interface{}{
				"onboardingId": id(),
				"approvedBy":   id(),
			}),
			onboardingOut, "ONBOARDING_NOT_FOUND", "INCOMPLETE_REQUIRED_DOCUMENTS",
			"SYSTEM_SETUP_INCOMPLETE", "ORIENTATION_INCOMPLETE"),
		activity("onboarding", "onboarding-delete", "Delete Onboarding", "Removes an onboarding record.",
			object([]string{"onboardingId"}, map[string]interface{}{"onboardingId": id()}),
			[]string{"onboardingId", "deleted"}, "ONBOARDING_NOT_FOUND"),
		activity("onboarding", "onboarding-eligible-list", "List Onboarding-Eligible Offers",
			"Lists accepted offers that have not started onboarding.",
			object(nil, map[string]interface{}{}),
			[]string{"offers", "count"}),
	}

	// Scoring calls are slow; give the shortlist run more room.
	for i := range acts {
		if acts[i].TaskType == "candidates-shortlist" {
			acts[i].Timeout = "60s"
			acts[i].Retries = 2
		}
	}
	return acts
}
