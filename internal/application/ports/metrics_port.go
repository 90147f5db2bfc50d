package ports

// QueryMetrics contador de consultas por fuente y resultado.
type QueryMetrics interface {
	Query(source, outcome string)
}

// ExporterProvider resuelve el exportador de un formato ("csv", "xlsx", "pdf").
type ExporterProvider interface {
	Get(format string) (ReportExporter, bool)
}
