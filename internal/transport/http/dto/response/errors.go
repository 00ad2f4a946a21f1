package response

var (
	ErrInvalidRequestFormat = ErrorResponse{
		Status:  "error",
		Error:   "invalid_request",
		Details: "Invalid request format",
	}

	ErrAuthenticationRequired = ErrorResponse{
		Status: "error",
		Error:  "authentication_required",
	}

	ErrAccessDenied = ErrorResponse{
		Status:  "error",
		Error:   "access_denied",
		Details: "You are not allowed to access this gallery",
	}

	ErrInvalidGalleryType = ErrorResponse{
		Status:  "error",
		Error:   "invalid_gallery_type",
		Details: "Gallery type must be public or private",
	}

	ErrGalleryNotFound = ErrorResponse{
		Status: "error",
		Error:  "gallery_not_found",
	}

	ErrUserNotFound = ErrorResponse{
		Status: "error",
		Error:  "user_not_found",
	}

	ErrGalleryCreateForbidden = ErrorResponse{
		Status:  "error",
		Error:   "gallery_create_forbidden",
		Details: "Galleries are created automatically from the user profile",
	}

	ErrInternal = ErrorResponse{
		Status:  "error",
		Error:   "internal_error",
		Details: "Internal server error",
	}
)
