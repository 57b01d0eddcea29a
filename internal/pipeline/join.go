package pipeline

import (
	"fmt"
	"strings"

	"dealertrack/internal/normalize"
)

// NoFolderLocation is the folder location assigned when the logistics
// export has no entry for an operation.
const NoFolderLocation = "Carpeta no generada"

// Primary-source header names, exactly as the sales system exports them.
const (
	headerFactoryNumber  = "Nº Fábrica"
	headerChassisNumber  = "Nº Chasis"
	headerModelVersion   = "Modelo / Versión Extendida"
	headerColor          = "Color"
	headerColor2         = "Color 2"
	headerDispatch       = "Estim Despacho"
	headerReception      = "Fec.Recep."
	headerUnitLocation   = "Ubicación"
	headerClientCode     = "Cód. Cliente"
	headerClientName     = "Cliente"
	headerSalesperson    = "Vendedor"
	headerOperation      = "Operación"
	headerPhone          = "Teléfono"
	headerEmail          = "E-mail"
	headerSaleOrder      = "Mdto.Vta."
	headerLoadDate       = "Fec.Carga"
	headerAssignDate     = "Fec.Asig.Ope."
	headerDaysAssigned   = "Días Asig"
	headerDaysInStock    = "Días Stock"
	headerTotalPrice     = "Pcio.Vta.Tot"
	headerDownPayment    = "Total Señas"
	headerTradeIn        = "Usa.Pte.Pgo"
	headerBankCredit     = "Créd. Bco."
	headerInvoice        = "Fact."
	headerSaleDate       = "Fec. Vta."
	headerObservations   = "Observaciones (Asig.Uni)"
	headerCreditTracking = "Seguimiento de Crédito (Asig.Uni.)"
	headerCreditBank     = "Banco del Crédito"
	headerDeliveryProb   = "Prob. Entr"
)

var requiredHeaders = []string{
	headerFactoryNumber, headerChassisNumber, headerModelVersion, headerColor, headerColor2,
	headerDispatch, headerReception, headerUnitLocation, headerClientCode, headerClientName,
	headerSalesperson, headerOperation, headerPhone, headerEmail, headerSaleOrder,
	headerLoadDate, headerAssignDate, headerDaysAssigned, headerDaysInStock, headerTotalPrice,
	headerDownPayment, headerTradeIn, headerBankCredit, headerInvoice, headerSaleDate,
	headerObservations, headerCreditTracking, headerCreditBank, headerDeliveryProb,
}

// headerIndex maps primary-source header names to column positions,
// built once per run from the header row. Missing headers are collected
// as warnings and their fields stay empty.
type headerIndex struct {
	positions map[string]int
	warnings  []string
}

func buildHeaderIndex(headerRow []string) *headerIndex {
	idx := &headerIndex{positions: make(map[string]int, len(headerRow))}
	for i, name := range headerRow {
		if _, seen := idx.positions[name]; !seen {
			idx.positions[name] = i
		}
	}
	for _, required := range requiredHeaders {
		if _, ok := idx.positions[required]; !ok {
			idx.warnings = append(idx.warnings, fmt.Sprintf("columna %q ausente en el archivo de ventas", required))
		}
	}
	return idx
}

// cell returns the value under a header for a row, empty when the header
// is absent or the row is short.
func (idx *headerIndex) cell(row []string, header string) string {
	pos, ok := idx.positions[header]
	if !ok || pos >= len(row) {
		return ""
	}
	return row[pos]
}

// secondaryIndex maps normalized operation numbers to folder locations
// from the logistics export (column 0 → operation, column 11 → location).
// The first occurrence of a key wins; later duplicates are ignored.
type secondaryIndex map[int]string

const secondaryLocationColumn = 11

func buildSecondaryIndex(rows [][]string) secondaryIndex {
	idx := make(secondaryIndex)
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			// First row is the export's own header.
			continue
		}
		key, ok := normalize.Operation(row[0])
		if !ok {
			continue
		}
		if _, seen := idx[key]; seen {
			continue
		}
		location := ""
		if len(row) > secondaryLocationColumn {
			location = strings.TrimSpace(row[secondaryLocationColumn])
		}
		idx[key] = location
	}
	return idx
}

// location resolves the folder location for an operation number, falling
// back to NoFolderLocation when the operation is blank, unparseable or
// simply absent from the logistics export.
func (idx secondaryIndex) location(operation string) string {
	key, ok := normalize.Operation(operation)
	if !ok {
		return NoFolderLocation
	}
	location, found := idx[key]
	if !found || location == "" {
		return NoFolderLocation
	}
	return location
}

// mapRecord builds a Record from one primary-source row using the header
// index. Currency-like cells pass through number cleaning; unknown
// headers leave their fields empty.
func mapRecord(idx *headerIndex, row []string) *Record {
	return &Record{
		FactoryNumber:       idx.cell(row, headerFactoryNumber),
		ChassisNumber:       idx.cell(row, headerChassisNumber),
		ModelVersion:        idx.cell(row, headerModelVersion),
		Color:               idx.cell(row, headerColor),
		Color2:              idx.cell(row, headerColor2),
		DispatchEstimate:    idx.cell(row, headerDispatch),
		ReceptionDate:       idx.cell(row, headerReception),
		UnitLocation:        idx.cell(row, headerUnitLocation),
		ClientCode:          idx.cell(row, headerClientCode),
		ClientName:          idx.cell(row, headerClientName),
		Salesperson:         idx.cell(row, headerSalesperson),
		Operation:           idx.cell(row, headerOperation),
		Phone:               idx.cell(row, headerPhone),
		Email:               idx.cell(row, headerEmail),
		SaleOrderAmount:     normalize.NumberString(idx.cell(row, headerSaleOrder)),
		LoadDate:            idx.cell(row, headerLoadDate),
		AssignmentDate:      idx.cell(row, headerAssignDate),
		DaysAssigned:        idx.cell(row, headerDaysAssigned),
		DaysInStock:         idx.cell(row, headerDaysInStock),
		TotalPrice:          normalize.NumberString(idx.cell(row, headerTotalPrice)),
		DownPayment:         normalize.NumberString(idx.cell(row, headerDownPayment)),
		TradeInCredit:       normalize.NumberString(idx.cell(row, headerTradeIn)),
		BankCredit:          normalize.NumberString(idx.cell(row, headerBankCredit)),
		Invoice:             idx.cell(row, headerInvoice),
		SaleDate:            idx.cell(row, headerSaleDate),
		ObservationCode:     idx.cell(row, headerObservations),
		CreditTracking:      idx.cell(row, headerCreditTracking),
		CreditBank:          idx.cell(row, headerCreditBank),
		DeliveryProbability: idx.cell(row, headerDeliveryProb),
	}
}
