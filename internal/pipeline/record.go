package pipeline

// Record is one sales order in the processed table. Field order matches
// the exported sheet; every value is kept as the cell text (cleaned
// numbers included) so the export reproduces the sheet faithfully.
type Record struct {
	FactoryNumber       string `json:"factory_number"`
	ChassisNumber       string `json:"chassis_number"`
	ModelVersion        string `json:"model_version"`
	Color               string `json:"color"`
	Color2              string `json:"color_2"`
	FinanceApproval     string `json:"finance_approval"`
	DispatchEstimate    string `json:"dispatch_estimate"`
	DeliveryEstimate    string `json:"delivery_estimate"`
	ReceptionDate       string `json:"reception_date"`
	UnitLocation        string `json:"unit_location"`
	ClientCode          string `json:"client_code"`
	ClientName          string `json:"client_name"`
	Salesperson         string `json:"salesperson"`
	Operation           string `json:"operation"`
	Executive           string `json:"executive"`
	OperationStatus     string `json:"operation_status"`
	OperationTracking   string `json:"operation_tracking"`
	FolderLocation      string `json:"folder_location"`
	Phone               string `json:"phone"`
	Email               string `json:"email"`
	SaleOrderAmount     string `json:"sale_order_amount"`
	LoadDate            string `json:"load_date"`
	AssignmentDate      string `json:"assignment_date"`
	DaysAssigned        string `json:"days_assigned"`
	DaysInStock         string `json:"days_in_stock"`
	TotalPrice          string `json:"total_price"`
	DownPayment         string `json:"down_payment"`
	TradeInCredit       string `json:"trade_in_credit"`
	BankCredit          string `json:"bank_credit"`
	PendingBalance      string `json:"pending_balance"`
	Class               string `json:"class"`
	Invoice             string `json:"invoice"`
	SaleDate            string `json:"sale_date"`
	ObservationCode     string `json:"observation_code"`
	FinanceStatus       string `json:"finance_status"`
	FinanceDeliveryDate string `json:"finance_delivery_date"`
	CreditTracking      string `json:"credit_tracking"`
	CreditBank          string `json:"credit_bank"`
	DeliveryProbability string `json:"delivery_probability"`
}

// Columns is the header row of the processed sheet, in record order.
var Columns = []string{
	"N° Fábrica", "N° Chasis", "Modelo/Versión", "Color", "Color 2",
	"Hab. Financiera", "Fecha Est. Despacho", "Est. Entrega", "Fecha Recepción", "Ubicación Unidad",
	"Cód. Cliente", "Cliente", "Vendedor", "Operación", "Ejecutivo",
	"Estado Operación", "Estado Seguimiento Op.", "Ubicación Carpeta", "Teléfono", "E-mail",
	"Mdto. Vta.", "Fec. Carga", "Fec. Asig. Op.", "Días Asignación", "Días Stock",
	"Precio Venta Total", "Total Seña", "Usa.Pte.Pgo", "Créd. Bco.", "Efectivo Pendiente",
	"Clase", "Factura", "Fecha Venta", "Observaciones", "Estado S.F.",
	"Fecha Entrega S.F.", "Seguimiento Crédito", "Banco del Crédito", "Prob. Entrega",
}

// Row renders the record as a cell slice in column order, for export.
func (r *Record) Row() []string {
	return []string{
		r.FactoryNumber, r.ChassisNumber, r.ModelVersion, r.Color, r.Color2,
		r.FinanceApproval, r.DispatchEstimate, r.DeliveryEstimate, r.ReceptionDate, r.UnitLocation,
		r.ClientCode, r.ClientName, r.Salesperson, r.Operation, r.Executive,
		r.OperationStatus, r.OperationTracking, r.FolderLocation, r.Phone, r.Email,
		r.SaleOrderAmount, r.LoadDate, r.AssignmentDate, r.DaysAssigned, r.DaysInStock,
		r.TotalPrice, r.DownPayment, r.TradeInCredit, r.BankCredit, r.PendingBalance,
		r.Class, r.Invoice, r.SaleDate, r.ObservationCode, r.FinanceStatus,
		r.FinanceDeliveryDate, r.CreditTracking, r.CreditBank, r.DeliveryProbability,
	}
}
