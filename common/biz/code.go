package biz

import "github.com/mszlu521/thunder/errs"

var (
	ErrOrgNameRequired      = errs.NewError(10001, "orgName is required")
	ErrSearchStringRequired = errs.NewError(10002, "workItemSearchString is required")
	ErrInvalidArguments     = errs.NewError(10003, "invalid tool arguments")
	ErrToolNotExisted       = errs.NewError(10004, "tool not existed")
)

var (
	ErrPatMissing = errs.NewError(20001, "Azure DevOps personal access token is missing")
	ErrNoTerminal = errs.NewError(20002, "no input available to read the personal access token")
)
