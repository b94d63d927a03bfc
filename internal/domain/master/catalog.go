package master

// EntityType describes one registered master-data entity type. Name is the
// route segment; ModuleID and TransactionID key the access-right lookup for
// every operation on the type.
type EntityType struct {
	Name          string
	Display       string
	ModuleID      int16
	TransactionID int16
}

// MasterModuleID is the module all master-data maintenance screens belong to.
const MasterModuleID int16 = 3

// Catalog returns every registered entity type. The list is fixed at compile
// time; adding a type means adding a row here and nothing else.
func Catalog() []EntityType {
	return catalog
}

// Lookup resolves an entity type by its route name.
func Lookup(name string) (EntityType, bool) {
	for _, et := range catalog {
		if et.Name == name {
			return et, true
		}
	}
	return EntityType{}, false
}

var catalog = []EntityType{
	{Name: "accountgroup", Display: "Account Group", ModuleID: MasterModuleID, TransactionID: 1},
	{Name: "accounttype", Display: "Account Type", ModuleID: MasterModuleID, TransactionID: 2},
	{Name: "cargotype", Display: "Cargo Type", ModuleID: MasterModuleID, TransactionID: 3},
	{Name: "documenttype", Display: "Document Type", ModuleID: MasterModuleID, TransactionID: 4},
	{Name: "jobstatus", Display: "Job Status", ModuleID: MasterModuleID, TransactionID: 5},
	{Name: "landingtype", Display: "Landing Type", ModuleID: MasterModuleID, TransactionID: 6},
	{Name: "partytype", Display: "Party Type", ModuleID: MasterModuleID, TransactionID: 7},
	{Name: "paymenttype", Display: "Payment Type", ModuleID: MasterModuleID, TransactionID: 8},
	{Name: "rank", Display: "Rank", ModuleID: MasterModuleID, TransactionID: 9},
	{Name: "supplytype", Display: "Supply Type", ModuleID: MasterModuleID, TransactionID: 10},
	{Name: "taskstatus", Display: "Task Status", ModuleID: MasterModuleID, TransactionID: 11},
	{Name: "transportlocation", Display: "Transport Location", ModuleID: MasterModuleID, TransactionID: 12},
	{Name: "transportmode", Display: "Transport Mode", ModuleID: MasterModuleID, TransactionID: 13},
	{Name: "vatservicecategory", Display: "VAT Service Category", ModuleID: MasterModuleID, TransactionID: 14},
	{Name: "visa", Display: "Visa", ModuleID: MasterModuleID, TransactionID: 15},
}
