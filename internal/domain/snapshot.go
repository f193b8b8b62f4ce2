package domain

import "sort"

// Snapshot is the unit of persistence: every tracked account plus the path
// settings the reconciliation engine reads from. It is loaded and saved as a
// whole; there are no partial updates.
type Snapshot struct {
	Accounts []Account
	Paths    PathSettings
}

// PathSettings locates the two external log producers. Both directories are
// optional; an absent directory is a normal "nothing to search" condition.
type PathSettings struct {
	// ClientLogsDir holds the game client's JSON-ish tracing files used for
	// identity detection.
	ClientLogsDir string
	// LauncherLogsDir holds the launcher's plain-text logs that carry
	// penalty events.
	LauncherLogsDir string
	// ClientExecutable is the binary the launch command starts.
	ClientExecutable string
}

// FindByID returns the index of the account with the given id, or -1.
func (s *Snapshot) FindByID(id AccountID) int {
	for i := range s.Accounts {
		if s.Accounts[i].ID == id {
			return i
		}
	}
	return -1
}

// FindByUsername returns the index of the account with the given login
// username, or -1.
func (s *Snapshot) FindByUsername(username string) int {
	for i := range s.Accounts {
		if s.Accounts[i].Username == username {
			return i
		}
	}
	return -1
}

// SortedByDisplayOrder returns the accounts in user-facing order without
// mutating the snapshot.
func (s *Snapshot) SortedByDisplayOrder() []Account {
	sorted := make([]Account, len(s.Accounts))
	copy(sorted, s.Accounts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DisplayOrder < sorted[j].DisplayOrder
	})
	return sorted
}

// Append adds an account at the end of the display order.
func (s *Snapshot) Append(account Account) {
	account.DisplayOrder = len(s.Accounts)
	s.Accounts = append(s.Accounts, account)
}

// Remove deletes the account with the given id and compacts display orders
// back to a dense 0..n-1 sequence, preserving relative order.
func (s *Snapshot) Remove(id AccountID) bool {
	idx := s.FindByID(id)
	if idx < 0 {
		return false
	}
	s.Accounts = append(s.Accounts[:idx], s.Accounts[idx+1:]...)
	s.CompactDisplayOrder()
	return true
}

// Move shifts the account with the given id to the target display position,
// clamping the target into range, then recompacts.
func (s *Snapshot) Move(id AccountID, position int) bool {
	sorted := s.SortedByDisplayOrder()
	from := -1
	for i := range sorted {
		if sorted[i].ID == id {
			from = i
			break
		}
	}
	if from < 0 {
		return false
	}

	if position < 0 {
		position = 0
	}
	if position > len(sorted)-1 {
		position = len(sorted) - 1
	}

	moved := sorted[from]
	sorted = append(sorted[:from], sorted[from+1:]...)
	sorted = append(sorted[:position], append([]Account{moved}, sorted[position:]...)...)

	for i := range sorted {
		sorted[i].DisplayOrder = i
	}
	s.Accounts = sorted
	return true
}

// CompactDisplayOrder reassigns dense 0..n-1 display orders following the
// current relative ordering.
func (s *Snapshot) CompactDisplayOrder() {
	sorted := s.SortedByDisplayOrder()
	for i := range sorted {
		sorted[i].DisplayOrder = i
	}
	s.Accounts = sorted
}
