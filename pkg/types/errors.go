package types

import "errors"

// Not-found errors. Reported to the caller, never fatal.
var (
	ErrNotFound        = errors.New("record not found")
	ErrProjectNotFound = errors.New("project not found")
	ErrProjectExists   = errors.New("project already exists")
	ErrInvalidID       = errors.New("invalid record ID")
)

// Validation errors. The offending record or operation is rejected;
// sibling records are unaffected.
var (
	ErrInvalidProjectName  = errors.New("project name must be alphanumeric, underscore, or dash")
	ErrDescriptionEmpty    = errors.New("description must not be empty")
	ErrSlugEmpty           = errors.New("plugin slug must not be empty")
	ErrActionNameEmpty     = errors.New("action name must not be empty")
	ErrIdentifierEmpty     = errors.New("primary identifier must not be empty")
	ErrTitleEmpty          = errors.New("title must not be empty")
	ErrDuplicateIdentifier = errors.New("an asset with this primary identifier already exists")
	ErrDuplicateService    = errors.New("a service with this port/protocol pair already exists on the asset")
	ErrInvalidPriority     = errors.New("invalid priority value")
	ErrInvalidSeverity     = errors.New("invalid severity value")
	ErrInvalidStatus       = errors.New("invalid status value")
	ErrInvalidAssetType    = errors.New("invalid asset type value")
	ErrInvalidPrivilege    = errors.New("invalid privilege level value")
	ErrInvalidSourceType   = errors.New("invalid source type value")
	ErrInvalidConfidence   = errors.New("invalid confidence value")
	ErrInvalidServiceState = errors.New("invalid service state value")
	ErrInvalidPort         = errors.New("port must be between 0 and 65535")
	ErrInvalidProtocol     = errors.New("protocol must be tcp or udp")
	ErrDataPointsNotObject = errors.New("key data points must be a JSON object")
)
