package common

// SessionKey is the metadata key holding the serialized current identity.
const SessionKey = "reportdrop_user"

// DefaultMaxFileSizeBytes is the upload ceiling used when none is configured (30MB).
const DefaultMaxFileSizeBytes int64 = 31457280

// AllowedExtension is the only file type accepted for upload.
const AllowedExtension = ".pbit"
