package mongodb

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

var (
	serializationMu         sync.Mutex
	serializationConfigured atomic.Bool
	registry                *bsoncodec.Registry
)

var tUUID = reflect.TypeOf(uuid.UUID{})

// EnsureSerialization выполняет одноразовую настройку BSON-сериализации:
// uuid.UUID кодируется как обычная строка, а не как binary subtype.
// Вызов идемпотентен и безопасен из нескольких горутин; настройка
// выполняется ровно один раз на процесс.
func EnsureSerialization() {
	if serializationConfigured.Load() {
		return
	}

	serializationMu.Lock()
	defer serializationMu.Unlock()
	if !serializationConfigured.CompareAndSwap(false, true) {
		return
	}

	reg := bson.NewRegistry()
	reg.RegisterTypeEncoder(tUUID, uuidCodec{})
	reg.RegisterTypeDecoder(tUUID, uuidCodec{})
	registry = reg
}

// Registry возвращает реестр кодеков; настраивает его при первом обращении.
func Registry() *bsoncodec.Registry {
	EnsureSerialization()
	return registry
}

// uuidCodec хранит uuid.UUID в документах строкой.
type uuidCodec struct{}

func (uuidCodec) EncodeValue(_ bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if !val.IsValid() || val.Type() != tUUID {
		return bsoncodec.ValueEncoderError{Name: "uuidCodec", Types: []reflect.Type{tUUID}, Received: val}
	}
	id := val.Interface().(uuid.UUID)
	return vw.WriteString(id.String())
}

func (uuidCodec) DecodeValue(_ bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if !val.CanSet() || val.Type() != tUUID {
		return bsoncodec.ValueDecoderError{Name: "uuidCodec", Types: []reflect.Type{tUUID}, Received: val}
	}

	switch vr.Type() {
	case bsontype.String:
		raw, err := vr.ReadString()
		if err != nil {
			return err
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("decode uuid from %q: %w", raw, err)
		}
		val.Set(reflect.ValueOf(id))
		return nil
	case bsontype.Binary:
		data, _, err := vr.ReadBinary()
		if err != nil {
			return err
		}
		id, err := uuid.FromBytes(data)
		if err != nil {
			return fmt.Errorf("decode uuid from binary: %w", err)
		}
		val.Set(reflect.ValueOf(id))
		return nil
	default:
		return fmt.Errorf("cannot decode uuid from bson type %s", vr.Type())
	}
}
