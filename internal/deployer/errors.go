package deployer

import "errors"

var (
	ErrInputValidation   = errors.New("input validation failed")
	ErrClientInit        = errors.New("http client init failed")
	ErrInitialUpload     = errors.New("initial deployment failed")
	ErrRedeployUpload    = errors.New("redeployment failed")
	ErrWatchSubscription = errors.New("watch subscription failed")
)
