package capability

// Capability classifies what a provider can do. The set is static and
// inspectable: each provider declares its capabilities up front, which
// keeps the registry's capability index cheap and correct without any
// reflection.
type Capability string

const (
	Metrics      Capability = "metrics"
	Logs         Capability = "logs"
	Tickets      Capability = "tickets"
	Repositories Capability = "repositories"
	Traces       Capability = "traces"
	Diagnostics  Capability = "diagnostics"
	Knowledge    Capability = "knowledge"
	Utilities    Capability = "utilities"
)

// All returns every known capability in a stable order.
func All() []Capability {
	return []Capability{
		Metrics,
		Logs,
		Tickets,
		Repositories,
		Traces,
		Diagnostics,
		Knowledge,
		Utilities,
	}
}

// IsValid reports whether c is one of the known capabilities.
func (c Capability) IsValid() bool {
	switch c {
	case Metrics, Logs, Tickets, Repositories, Traces, Diagnostics, Knowledge, Utilities:
		return true
	}
	return false
}

func (c Capability) String() string {
	return string(c)
}
