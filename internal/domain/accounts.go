package domain

import "fmt"

// accountNames is the chart-of-accounts excerpt used to label reports.
var accountNames = map[Account]string{
	85433: "Contraprestação assumida em Pós-pagamento",
	40507: "Despesas com Eventos/ Sinistros",
	90919: "Intercâmbio a Pagar de Corresponsabilidade Cedida - Preço Pós-estabelecido",
	15456: "IRRF - sobre Faturamento",
	40140: "Ato Odontológico",
	51202: "Despesas Diversas",
	52631: "Taxa para Manutenção da Central",
	52532: "Propaganda e Marketing - Matriz",
	19958: "Contraprestação Corresponsabilidade Assumida Pré-pagamento",
	52632: "Taxa para Manutenção da Federação",
	19253: "Crédito com Singulares",
	40413: "(-) Recup.Reemb. Contratante Assumida Pós-pagamento",
	23476: "IRPJ - NF Serviços (cod. 3280)",
	21898: "Contrap. Corresp. Assumida Pós",
	92003: "Rede Contratada/Credenciada PJ - clínicas",
	30203: "Corresponsabilidade Assumida Pré",
	22036: "Federação Paulista",
	1021:  "VL. N/NFF. INTERC. RECEB.ODONT",
	2005:  "VL. S/NFF. INTERC. A PAGAR",
	2341:  "VL. IRRF S/NF INTERC. PAGAR",
	22:    "VL. IRRF N/NFF. SERVIÇOS",
	361:   "VL. TAXA MANUT. DA CENTRAL S/N",
	365:   "VL. FUNDO DE MARKTING S/NFF",
	30:    "VL. CONTRATO SERVIÇOS DIVERSOS",
	33:    "VL. CONTRAP. A RECEBER ODONT",
	228:   "VL. CONTRAP. A RECEBER CLINICA",
	31426: "VL. CONTRATO OUTROS SERVIÇOS",
	30069: "VL. CONTRAP. RECEBIDA",
	30071: "VL. CONTRAP. RECEBIDA - CONSULTORIA",
	30127: "VL. CONTRAP. SERVIÇOS ADMINISTRATIVOS",
	368:   "VL. TAXA MANUT. DA FEDERAÇÃO",
	179:   "VL. MULTAS/JUROS",
}

// AccountName returns the catalogued description for a, or "" when unknown.
func AccountName(a Account) string {
	return accountNames[a]
}

// AccountLabel renders "code - description", falling back to the bare code.
func AccountLabel(a Account) string {
	if a.IsBlank() {
		return ""
	}
	if name, ok := accountNames[a]; ok {
		return fmt.Sprintf("%d - %s", int(a), name)
	}
	return a.String()
}
