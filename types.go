package yadisk

import "time"

// Resource describes a file or folder on Disk.
type Resource struct {
	ResourceID       string                 `json:"resource_id"`
	Path             string                 `json:"path"`
	Type             string                 `json:"type"`
	MediaType        string                 `json:"media_type"`
	MimeType         string                 `json:"mime_type"`
	Name             string                 `json:"name"`
	Created          time.Time              `json:"created"`
	Modified         time.Time              `json:"modified"`
	Size             int64                  `json:"size"`
	MD5              string                 `json:"md5"`
	SHA256           string                 `json:"sha256"`
	File             string                 `json:"file"`
	Preview          string                 `json:"preview"`
	PublicKey        string                 `json:"public_key"`
	PublicURL        string                 `json:"public_url"`
	OriginPath       string                 `json:"origin_path"`
	CustomProperties map[string]interface{} `json:"custom_properties"`
	Embedded         *ResourceList          `json:"_embedded"`
}

// IsDir reports whether the resource is a folder.
func (r *Resource) IsDir() bool { return r.Type == "dir" }

// IsFile reports whether the resource is a file.
func (r *Resource) IsFile() bool { return r.Type == "file" }

// ResourceList is the contents listing embedded in a folder resource.
type ResourceList struct {
	Sort   string     `json:"sort"`
	Path   string     `json:"path"`
	Items  []Resource `json:"items"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
	Total  int        `json:"total"`
}

// FileList is a page of the flat listing of all files on Disk. Items keep
// the order the service reported them in.
type FileList struct {
	Items  []Resource `json:"items"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// LastUploadedList is a listing of the most recently uploaded files.
type LastUploadedList struct {
	Items []Resource `json:"items"`
	Limit int        `json:"limit"`
}

// PublicResourceList is a page of the published resources listing.
type PublicResourceList struct {
	Items  []Resource `json:"items"`
	Type   string     `json:"type"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

// Link points at a resource or at a pending asynchronous operation. It also
// serves as the transfer descriptor handed out by the upload and download
// link endpoints: a short-lived href plus the method to use against it.
type Link struct {
	Href        string `json:"href"`
	Method      string `json:"method"`
	Templated   bool   `json:"templated"`
	OperationID string `json:"operation_id"`
}

// DiskInfo holds the general metadata of the user's Disk.
type DiskInfo struct {
	TotalSpace    int64             `json:"total_space"`
	UsedSpace     int64             `json:"used_space"`
	TrashSize     int64             `json:"trash_size"`
	MaxFileSize   int64             `json:"max_file_size"`
	IsPaid        bool              `json:"is_paid"`
	SystemFolders map[string]string `json:"system_folders"`
	User          DiskUser          `json:"user"`
}

// DiskUser identifies the owner of a Disk.
type DiskUser struct {
	UID         string `json:"uid"`
	Login       string `json:"login"`
	DisplayName string `json:"display_name"`
	Country     string `json:"country"`
}

// OperationStatus reports the state of an asynchronous operation.
type OperationStatus struct {
	Status string `json:"status"`
}

// Asynchronous operation states.
const (
	OperationSuccess    = "success"
	OperationFailed     = "failed"
	OperationInProgress = "in-progress"
)

// TrashStatus is the outcome of a status-driven trash call.
type TrashStatus string

// Trash call outcomes.
const (
	TrashRemoved   TrashStatus = "removed"
	TrashRemoving  TrashStatus = "removing"
	TrashRestored  TrashStatus = "restored"
	TrashRestoring TrashStatus = "restoring"
)
