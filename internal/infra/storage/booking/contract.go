package booking

import "github.com/m04kA/Hotel-BookingService/pkg/dbmetrics"

// DBExecutor переиспользует интерфейс dbmetrics: репозиторий работает
// одинаково поверх *sql.DB и обертки с метриками
type DBExecutor = dbmetrics.DBExecutor
