package engine

import (
	"github.com/strandfield/libscript/internal/errkind"
	"github.com/strandfield/libscript/internal/symbols"
	"github.com/strandfield/libscript/internal/value"
)

// registerArrayTemplate installs the built-in Array<T> class template
// (spec §4.9 "a built-in Array<T> template"). Each instantiation gets its
// own *symbols.Class and registered Type, cached by Template.GetClassInstance
// so Array<Int> compiled twice resolves to the same type both times.
// Runtime values are value.KindArray, built directly via value.NewArray —
// they never go through value.Construct/constructObject, so the class
// itself carries no constructors, only the methods a script can call.
func (e *Engine) registerArrayTemplate() {
	params := []symbols.TemplateParameter{{Kind: symbols.TypeParameter, Name: "T"}}
	e.arrayTemplate = symbols.NewClassTemplate("Array", params, func(args []symbols.TemplateArgument) (*symbols.Class, error) {
		elemType := args[0].Type
		class := symbols.NewClass("Array", nil)
		id := e.types.NextClassID()
		classType := symbols.NewType(id, symbols.ObjectFlag)
		e.types.RegisterClass(classType, class)
		e.addArrayMethods(class, classType, elemType)
		return class, nil
	})
	e.global.AddTemplate(e.arrayTemplate)
}

func (e *Engine) addArrayMethods(class *symbols.Class, classType, elemType symbols.Type) {
	addMethod := func(name string, proto *symbols.Prototype, body symbols.NativeCallback) {
		proto.Lock()
		f := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, name), proto)
		f.Body.Native = body
		class.AddFunction(f)
	}

	addMethod("size", symbols.NewPrototype(symbols.Int, symbols.CRef(classType).WithThis()),
		func(cf symbols.CallFrame) (any, error) {
			this := cf.Arg(0).(*value.Value).Deref()
			return value.NewInt(int64(len(this.Array().Elements))), nil
		})

	addMethod("empty", symbols.NewPrototype(symbols.Bool, symbols.CRef(classType).WithThis()),
		func(cf symbols.CallFrame) (any, error) {
			this := cf.Arg(0).(*value.Value).Deref()
			return value.NewBool(len(this.Array().Elements) == 0), nil
		})

	addMethod("at", symbols.NewPrototype(symbols.Ref(elemType), symbols.Ref(classType).WithThis(), symbols.Int),
		func(cf symbols.CallFrame) (any, error) {
			this := cf.Arg(0).(*value.Value).Deref()
			idx := cf.Arg(1).(*value.Value).Deref().AsInt()
			elems := this.Array().Elements
			if idx < 0 || idx >= int64(len(elems)) {
				return nil, errkind.New(errkind.RuntimeError, "array index out of range")
			}
			return value.NewReference(symbols.Ref(elemType), elems[idx]), nil
		})

	addMethod("push_back", symbols.NewPrototype(symbols.Void, symbols.Ref(classType).WithThis(), elemType),
		func(cf symbols.CallFrame) (any, error) {
			this := cf.Arg(0).(*value.Value).Deref()
			copied, err := value.Copy(cf.Arg(1).(*value.Value).Deref(), e.types, e.interp)
			if err != nil {
				return nil, err
			}
			arr := this.Array()
			arr.Elements = append(arr.Elements, copied)
			return nil, nil
		})
}

// registerInitializerListTemplate installs the built-in InitializerList<T>
// class template (spec §4.9). Unlike Array<T>, an initializer-list value is
// read-only from script code: it exists only to be consumed by a
// constructor or Array<T>-from-braces conversion, so it exposes only size
// and at, neither of which returns a mutable reference.
func (e *Engine) registerInitializerListTemplate() {
	params := []symbols.TemplateParameter{{Kind: symbols.TypeParameter, Name: "T"}}
	e.initListTemplate = symbols.NewClassTemplate("InitializerList", params, func(args []symbols.TemplateArgument) (*symbols.Class, error) {
		elemType := args[0].Type
		class := symbols.NewClass("InitializerList", nil)
		id := e.types.NextClassID()
		classType := symbols.NewType(id, symbols.ObjectFlag)
		e.types.RegisterClass(classType, class)

		addMethod := func(name string, proto *symbols.Prototype, body symbols.NativeCallback) {
			proto.Lock()
			f := symbols.NewFunction(symbols.KindFunction, symbols.NewStringName(symbols.FunctionSymbolKind, name), proto)
			f.Body.Native = body
			class.AddFunction(f)
		}

		addMethod("size", symbols.NewPrototype(symbols.Int, symbols.CRef(classType).WithThis()),
			func(cf symbols.CallFrame) (any, error) {
				this := cf.Arg(0).(*value.Value).Deref()
				return value.NewInt(int64(len(this.InitializerList().Elements))), nil
			})

		addMethod("at", symbols.NewPrototype(symbols.CRef(elemType), symbols.CRef(classType).WithThis(), symbols.Int),
			func(cf symbols.CallFrame) (any, error) {
				this := cf.Arg(0).(*value.Value).Deref()
				idx := cf.Arg(1).(*value.Value).Deref().AsInt()
				elems := this.InitializerList().Elements
				if idx < 0 || idx >= int64(len(elems)) {
					return nil, errkind.New(errkind.RuntimeError, "initializer list index out of range")
				}
				return value.NewReference(symbols.CRef(elemType), elems[idx]), nil
			})

		return class, nil
	})
	e.global.AddTemplate(e.initListTemplate)
}
