package entities

// EligibleForElection reports whether a participant with the given attendance
// credit total clears an election's minimum attendance requirement.
func EligibleForElection(attendanceCredits int, minimumAttendance int) bool {
	return attendanceCredits >= minimumAttendance
}

// ClassifyAccess derives the snapshot status for one election from the
// participant's current ballot and attendance state. An existing ballot wins
// over eligibility: a participant who already voted is reported as such even
// if their credits later drop below the threshold.
func ClassifyAccess(hasBallot bool, attendanceCredits int, minimumAttendance int) ElectionAccessStatus {
	if hasBallot {
		return ElectionAccessAlreadyVoted
	}
	if !EligibleForElection(attendanceCredits, minimumAttendance) {
		return ElectionAccessIneligible
	}
	return ElectionAccessOpen
}
