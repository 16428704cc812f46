package entity

const (
	KindService     Kind = "service"
	KindAPI         Kind = "api"
	KindTable       Kind = "table"
	KindTopic       Kind = "topic"
	KindDashboard   Kind = "dashboard"
	KindModel       Kind = "model"
	KindApplication Kind = "application"
)

// AllSupportedKinds holds a list of all supported kinds
var AllSupportedKinds = []Kind{
	KindService,
	KindAPI,
	KindTable,
	KindTopic,
	KindDashboard,
	KindModel,
	KindApplication,
}

// Kind specifies a supported kind name
type Kind string

// String cast Kind to string
func (k Kind) String() string {
	return string(k)
}

// IsValid will validate whether the kind name is valid or not
func (k Kind) IsValid() bool {
	switch k {
	case KindService, KindAPI, KindTable, KindTopic,
		KindDashboard, KindModel, KindApplication:
		return true
	}
	return false
}
