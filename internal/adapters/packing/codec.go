package packing

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/andrescamacho/traveller-trade-go/internal/domain/world"
)

// Wire shape of the packing call:
//
//	request:  {"capacity": 40, "lots": [{"label": "A", "tons": 12}, ...]}
//	response: {"lots": [...]}
func encodeRequest(lots []world.FreightLot, capacity int) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"capacity": capacity,
		"lots":     lotsToList(lots),
	})
}

func decodeRequest(req *structpb.Struct) ([]world.FreightLot, int, error) {
	capacity, ok := req.GetFields()["capacity"]
	if !ok {
		return nil, 0, fmt.Errorf("missing capacity")
	}
	lots, err := listToLots(req.GetFields()["lots"])
	if err != nil {
		return nil, 0, err
	}
	return lots, int(capacity.GetNumberValue()), nil
}

func encodeResponse(lots []world.FreightLot) (*structpb.Struct, error) {
	return structpb.NewStruct(map[string]interface{}{
		"lots": lotsToList(lots),
	})
}

func decodeResponse(resp *structpb.Struct) ([]world.FreightLot, error) {
	return listToLots(resp.GetFields()["lots"])
}

func lotsToList(lots []world.FreightLot) []interface{} {
	out := make([]interface{}, 0, len(lots))
	for _, lot := range lots {
		out = append(out, map[string]interface{}{
			"label": lot.Label,
			"tons":  lot.Tons,
		})
	}
	return out
}

func listToLots(v *structpb.Value) ([]world.FreightLot, error) {
	if v == nil {
		return nil, nil
	}
	list := v.GetListValue()
	if list == nil {
		return nil, fmt.Errorf("lots must be a list")
	}

	lots := make([]world.FreightLot, 0, len(list.GetValues()))
	for i, item := range list.GetValues() {
		fields := item.GetStructValue().GetFields()
		tons, ok := fields["tons"]
		if !ok {
			return nil, fmt.Errorf("lot %d has no tons", i)
		}
		lots = append(lots, world.FreightLot{
			Label: fields["label"].GetStringValue(),
			Tons:  int(tons.GetNumberValue()),
		})
	}
	return lots, nil
}
