package availability

import (
	"github.com/m04kA/SMC-MentorBookingService/pkg/dbmetrics"
)

type DBExecutor = dbmetrics.DBExecutor
