package component

// FreezeRequest asks the BadGuySystem to freeze the entity this tick.
type FreezeRequest struct{}

var FreezeRequestComponent = NewComponent[FreezeRequest]()

// UnfreezeRequest asks the BadGuySystem to thaw the entity this tick.
type UnfreezeRequest struct{}

var UnfreezeRequestComponent = NewComponent[UnfreezeRequest]()

// IgniteRequest asks the BadGuySystem to set the entity alight.
type IgniteRequest struct{}

var IgniteRequestComponent = NewComponent[IgniteRequest]()

// SquishRequest reports that By landed on the entity.
type SquishRequest struct {
	By EntityRef
}

var SquishRequestComponent = NewComponent[SquishRequest]()
