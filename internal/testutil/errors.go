package testutil

import "errors"

var errNullRecipient = errors.New(`null value in column "user_email" violates not-null constraint`)
