// Package heysync is the runtime half of heysync: the Channel contract that
// generated publishers forward to, the shared Signal payload, and the class
// registry and instance factory that generated init functions feed.
//
// A generated publisher for
//
//	//heysync::publisher
//	type Mouse interface {
//		EatCheese(kind string)
//		ProvokeCats(count int)
//	}
//
// is obtained either through its generated constructor
//
//	mouse := NewMousePublisher(cheese, cats)
//
// or through the registry
//
//	mouse, err := heysync.New[Mouse](cheese, cats)
//
// Either way channels are bound by position, in the interface's declared
// method order. EatCheese("cheddar") publishes "cheddar" to cheese only.
package heysync
