package errors

func NewInvalidParamError(paramName string) Error {
	return Error{
		Message: "Invalid parameter: " + paramName,
		Error:   400,
	}
}

func NewMissingParamError(paramName string) Error {
	return Error{
		Message: "Missing parameter: " + paramName,
		Error:   400,
	}
}

func NewInvalidResourceError(reason string) Error {
	return Error{
		Message: "Invalid resource: " + reason,
		Error:   400,
	}
}

var NoBaseVersionError = Error{
	Message: "No base version specified",
	Error:   400,
}

var ResourceNotFoundError = Error{
	Message: "Resource not found",
	Error:   404,
}

var BaseVersionNotKnownError = Error{
	Message: "Specified base version not known",
	Error:   417,
}

var DeltaVerificationError = Error{
	Message: "Delta could not be verified",
	Error:   500,
}

var InternalServerError = Error{
	Message: "Internal server error",
	Error:   500,
}

var DataRetrievalError = Error{
	Message: "Failed to retrieve data",
	Error:   500,
}
