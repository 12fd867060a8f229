package logmeinapi

// Host is one entry of the account's host list.
type Host struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
}

// HostList is the body returned by GET /hosts. Hosts is a pointer so an
// absent or null field is told apart from an empty account.
type HostList struct {
	Hosts *[]Host `json:"hosts"`
}

func (l *HostList) validate() error {
	if l.Hosts == nil {
		return ErrMissingHosts
	}
	return nil
}

// DeleteRequest is the body sent with DELETE /hosts.
type DeleteRequest struct {
	HostIDs []int64 `json:"hostIds"`
}
