package product

// Kind 商品类型
type Kind string

const (
	KindGeneric Kind = "generic"
	KindReel    Kind = "reel"
	KindRod     Kind = "rod"
	KindLure    Kind = "lure"
)

// Valid 是否合法的商品类型
func (k Kind) Valid() bool {
	switch k {
	case KindGeneric, KindReel, KindRod, KindLure:
		return true
	}
	return false
}

// ReelType 渔轮类型
type ReelType string

const (
	ReelSpinning    ReelType = "SPINNING"
	ReelBaitcasting ReelType = "BAITCASTING"
	ReelSurfcasting ReelType = "SURFCASTING"
	ReelCarpfishing ReelType = "CARPFISHING"
	ReelTrolling    ReelType = "TROLLING"
	ReelElectric    ReelType = "ELECTRIC"
	ReelFly         ReelType = "FLY"
)

// ReelTypes 全部渔轮类型
var ReelTypes = []ReelType{
	ReelSpinning, ReelBaitcasting, ReelSurfcasting, ReelCarpfishing,
	ReelTrolling, ReelElectric, ReelFly,
}

func (t ReelType) Valid() bool { return contains(ReelTypes, t) }

// DragSystem 卸力系统
type DragSystem string

const (
	DragFront    DragSystem = "FRONT"
	DragRear     DragSystem = "REAR"
	DragMagnetic DragSystem = "MAGNETIC"
)

var DragSystems = []DragSystem{DragFront, DragRear, DragMagnetic}

func (d DragSystem) Valid() bool { return contains(DragSystems, d) }

// RodType 鱼竿类型
type RodType string

const (
	RodSpinning    RodType = "SPINNING"
	RodCasting     RodType = "CASTING"
	RodSurfcasting RodType = "SURFCASTING"
	RodCarpfishing RodType = "CARPFISHING"
	RodBolognese   RodType = "BOLOGNESE"
	RodEnglish     RodType = "ENGLISH"
	RodLakeTrout   RodType = "LAKE_TROUT"
	RodStreamTrout RodType = "STREAM_TROUT"
	RodFeeder      RodType = "FEEDER"
	RodBombarda    RodType = "BOMBARDA"
	RodPole        RodType = "POLE"
	RodTrolling    RodType = "TROLLING"
)

var RodTypes = []RodType{
	RodSpinning, RodCasting, RodSurfcasting, RodCarpfishing, RodBolognese,
	RodEnglish, RodLakeTrout, RodStreamTrout, RodFeeder, RodBombarda,
	RodPole, RodTrolling,
}

func (t RodType) Valid() bool { return contains(RodTypes, t) }

// RodAction 调性
type RodAction string

const (
	ActionUltraLight  RodAction = "ULTRA_LIGHT"
	ActionLight       RodAction = "LIGHT"
	ActionMediumLight RodAction = "MEDIUM_LIGHT"
	ActionMedium      RodAction = "MEDIUM"
	ActionMediumHeavy RodAction = "MEDIUM_HEAVY"
	ActionHeavy       RodAction = "HEAVY"
	ActionExtraHeavy  RodAction = "EXTRA_HEAVY"
)

var RodActions = []RodAction{
	ActionUltraLight, ActionLight, ActionMediumLight, ActionMedium,
	ActionMediumHeavy, ActionHeavy, ActionExtraHeavy,
}

func (a RodAction) Valid() bool { return contains(RodActions, a) }

// LureType 饵料类型
type LureType string

const (
	LureArtificial LureType = "ARTIFICIAL"
	LureNatural    LureType = "NATURAL"
	LureLive       LureType = "LIVE"
)

var LureTypes = []LureType{LureArtificial, LureNatural, LureLive}

func (t LureType) Valid() bool { return contains(LureTypes, t) }

// ArtificialCategory 假饵细分
type ArtificialCategory string

const (
	ArtificialHardBait  ArtificialCategory = "HARD_BAIT"
	ArtificialSoftBait  ArtificialCategory = "SOFT_BAIT"
	ArtificialSpoon     ArtificialCategory = "SPOON"
	ArtificialSpinner   ArtificialCategory = "SPINNER"
	ArtificialJig       ArtificialCategory = "JIG"
	ArtificialPopper    ArtificialCategory = "POPPER"
	ArtificialStickbait ArtificialCategory = "STICKBAIT"
	ArtificialCrankbait ArtificialCategory = "CRANKBAIT"
	ArtificialSwimbait  ArtificialCategory = "SWIMBAIT"
	ArtificialTopwater  ArtificialCategory = "TOPWATER"
	ArtificialOther     ArtificialCategory = "OTHER"
)

var ArtificialCategories = []ArtificialCategory{
	ArtificialHardBait, ArtificialSoftBait, ArtificialSpoon, ArtificialSpinner,
	ArtificialJig, ArtificialPopper, ArtificialStickbait, ArtificialCrankbait,
	ArtificialSwimbait, ArtificialTopwater, ArtificialOther,
}

func (c ArtificialCategory) Valid() bool { return contains(ArtificialCategories, c) }

func contains[T comparable](values []T, v T) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
