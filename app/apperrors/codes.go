package apperrors

const (
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeInternal       = "INTERNAL"

	CodeEventNotFound     = "EVENT_NOT_FOUND"
	CodeEventInvalid      = "EVENT_INVALID"
	CodeTeamNotFound      = "TEAM_NOT_FOUND"
	CodeTeamInvalid       = "TEAM_INVALID"
	CodeTeamNameTaken     = "TEAM_NAME_TAKEN"
	CodeTeamMember        = "TEAM_ALREADY_MEMBER"
	CodeTeamEventMismatch = "TEAM_EVENT_MISMATCH"
	CodeUserNotFound      = "USER_NOT_FOUND"
	CodeUserExists        = "USER_EXISTS"
	CodeUserInvalid       = "USER_INVALID"

	CodeSubmissionNotFound  = "SUBMISSION_NOT_FOUND"
	CodeSubmissionInvalid   = "SUBMISSION_INVALID"
	CodeSubmissionDuplicate = "SUBMISSION_DUPLICATE"
	CodeDeadlinePassed      = "DEADLINE_PASSED"
	CodeAlreadyGraded       = "ALREADY_GRADED"
	CodeInvalidScore        = "INVALID_SCORE"
	CodeGradeInvalid        = "GRADE_INVALID"

	CodeAttendanceDuplicate = "ATTENDANCE_DUPLICATE"
	CodeAttendanceInvalid   = "ATTENDANCE_INVALID"

	CodeNotTeamMember    = "NOT_TEAM_MEMBER"
	CodeNotSubmitter     = "NOT_SUBMITTER"
	CodeMissingRole      = "INSUFFICIENT_PERMISSIONS"
	CodeInvalidToken     = "INVALID_TOKEN"
	CodeMissingToken     = "MISSING_TOKEN"
	CodeBadCredentials   = "INVALID_CREDENTIALS"
	CodeFirebaseDisabled = "FIREBASE_DISABLED"
)
