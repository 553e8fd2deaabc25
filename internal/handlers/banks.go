package handlers

type bank struct {
	Code string
	Name string
}

// banks offered by the taskpane select. Any four digit code is accepted by
// validation.
var banks = []bank{
	{"0100", "Komerční banka"},
	{"0300", "ČSOB"},
	{"0600", "MONETA Money Bank"},
	{"0710", "Česká národní banka"},
	{"0800", "Česká spořitelna"},
	{"2010", "Fio banka"},
	{"2700", "UniCredit Bank"},
	{"3030", "Air Bank"},
	{"5500", "Raiffeisenbank"},
	{"6210", "mBank"},
	{"6100", "Equa bank"},
	{"2250", "Banka CREDITAS"},
}

func knownBank(code string) bool {
	for _, b := range banks {
		if b.Code == code {
			return true
		}
	}
	return false
}
